package utils

import "time"

func StringPtr(s string) *string { return &s }

func IntPtr(i int) *int { return &i }

func Int64Ptr(i int64) *int64 { return &i }

func Float64Ptr(f float64) *float64 { return &f }

func TimePtr(t time.Time) *time.Time { return &t }

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func PtrInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
