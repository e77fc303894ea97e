package iiifas

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// EventKey returns the store key of the event for the given member id.
func EventKey(memberID string) string {
	sum := sha256.Sum256([]byte(memberID))
	return hex.EncodeToString(sum[:])
}

func IsEventKey(key string) bool {
	if len(key) != sha256.Size*2 {
		return false
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return false
		}
	}
	return true
}

// PageURI concatenates base and page number without separator normalization.
func PageURI(base string, index int) string {
	return base + strconv.Itoa(index)
}

// ActivityBase turns the feed base (.../as/) into the activity base (.../activity/).
func ActivityBase(serviceBase string) string {
	return strings.Replace(serviceBase, "/as/", "/activity/", 1)
}

func CeilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

var objectTypes = map[string]string{
	"sc:Manifest":   "Manifest",
	"sc:Collection": "Collection",
	"sc:Canvas":     "Canvas",
	"sc:Range":      "Range",
}

// NormalizeType maps IIIF v2 short type codes to their ActivityStreams object types.
func NormalizeType(t string) string {
	if long, ok := objectTypes[t]; ok {
		return long
	}
	return t
}
