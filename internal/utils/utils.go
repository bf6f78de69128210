package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// ID prefixes used by the document stores.
const (
	ClientIDPrefix  = "cli"
	AccountIDPrefix = "acc"
)

// GenerateID generates a unique ID with the given prefix.
func GenerateID(prefix string) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	const length = 10

	result := make([]byte, length)
	for i := range result {
		num, _ := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		result[i] = charset[num.Int64()]
	}

	return fmt.Sprintf("%s-%s", prefix, string(result))
}

// IsBlank reports whether s is empty or whitespace-only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
