package env

import (
	"os"
	"strconv"
	"strings"
)

func Bool(env string, defaultValue bool) bool {
	if env == "" || os.Getenv(env) == "" {
		return defaultValue
	}
	return strings.ToLower(os.Getenv(env)) == "true"
}

func Int(env string, defaultValue int) int {
	if env == "" || os.Getenv(env) == "" {
		return defaultValue
	}
	num, err := strconv.Atoi(os.Getenv(env))
	if err != nil {
		return defaultValue
	}
	return num
}

func String(env string, defaultValue string) string {
	if env == "" || os.Getenv(env) == "" {
		return defaultValue
	}
	return os.Getenv(env)
}

// Ints parses a comma separated list, skipping entries that are not integers.
func Ints(env string, defaultValue []int) []int {
	raw := os.Getenv(env)
	if env == "" || raw == "" {
		return defaultValue
	}
	var nums []int
	for _, part := range strings.Split(raw, ",") {
		num, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		nums = append(nums, num)
	}
	if len(nums) == 0 {
		return defaultValue
	}
	return nums
}
