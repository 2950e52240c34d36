// Package test contains assertion helpers shared by package tests.
package test

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/apccurtiss/langlang"
)

func fatalf(t testing.TB, message string, params ...any) {
	t.Helper()
	if len(params) > 0 {
		message = fmt.Sprintf(message, params...)
	}
	_, thisFile, _, _ := runtime.Caller(0)
	file := thisFile
	line := 0
	for i := 2; file == thisFile; i++ {
		_, file, line, _ = runtime.Caller(i)
	}
	t.Fatalf("%s at %s:%d", message, file, line)
}

// ExpectErrorCode fails the test unless e is (or wraps) a *langlang.Error with expected code.
func ExpectErrorCode(t testing.TB, expected int, e error) {
	t.Helper()
	if langlang.Code(e) != expected {
		fatalf(t, "expecting error code %d, got %v", expected, e)
	}
}

// ExpectCauseCodes fails the test unless e is an aggregate error whose causes have expected codes, in order.
func ExpectCauseCodes(t testing.TB, e error, expected ...int) {
	t.Helper()
	ee, valid := e.(*langlang.Error)
	if !valid {
		fatalf(t, "expecting *langlang.Error, got %v", e)
		return
	}

	got := make([]int, len(ee.Causes))
	for i, c := range ee.Causes {
		got[i] = langlang.Code(c)
	}
	if fmt.Sprint(got) != fmt.Sprint(expected) {
		fatalf(t, "expecting cause codes %v, got %v", expected, got)
	}
}
