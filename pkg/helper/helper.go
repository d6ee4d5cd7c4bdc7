package helper

import (
	"runtime"
	"strings"
)

// GetFuncName returns the name of the calling function, qualified by its
// package name only.
func GetFuncName() string {
	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		return "unknown"
	}
	return ShortFuncName(runtime.FuncForPC(pc).Name())
}

// ShortFuncName trims the package path from a name returned by GetFuncName.
func ShortFuncName(name string) string {
	if idx := strings.LastIndex(name, "/"); idx != -1 {
		return name[idx+1:]
	}
	return name
}
