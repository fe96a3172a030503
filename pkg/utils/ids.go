package utils

import (
	"fmt"
	"math/rand"
	"time"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomSuffix(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return string(b)
}

// NewRecordID builds a time-based id with a random suffix so two records
// created in the same millisecond cannot collide.
func NewRecordID() string {
	return fmt.Sprintf("record_%d_%s", time.Now().UnixMilli(), randomSuffix(9))
}

func NewPhotoID() string {
	return fmt.Sprintf("photo_%d_%s", time.Now().UnixMilli(), randomSuffix(9))
}
