package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv_EmptyFallsBack(t *testing.T) {
	t.Setenv("PLANETARY_TEST_VALUE", "")
	assert.Equal(t, "fallback", GetEnv("PLANETARY_TEST_VALUE", "fallback"))

	t.Setenv("PLANETARY_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("PLANETARY_TEST_VALUE", "fallback"))
}

func TestGetEnvAllowEmpty(t *testing.T) {
	assert.Equal(t, "fallback", GetEnvAllowEmpty("PLANETARY_TEST_UNSET_VALUE", "fallback"))

	t.Setenv("PLANETARY_TEST_VALUE", "")
	assert.Equal(t, "", GetEnvAllowEmpty("PLANETARY_TEST_VALUE", "fallback"))
}

func TestGetEnvTyped(t *testing.T) {
	t.Setenv("PLANETARY_TEST_INT", "42")
	t.Setenv("PLANETARY_TEST_FLOAT", "not-a-number")
	t.Setenv("PLANETARY_TEST_BOOL", "true")
	t.Setenv("PLANETARY_TEST_LIST", "a, ,b")

	assert.Equal(t, 42, GetEnvInt("PLANETARY_TEST_INT", 7))
	assert.Equal(t, 1.5, GetEnvFloat("PLANETARY_TEST_FLOAT", 1.5))
	assert.True(t, GetEnvBool("PLANETARY_TEST_BOOL", false))
	assert.Equal(t, 3*time.Second, GetEnvSeconds("PLANETARY_TEST_UNSET_SECONDS", 3))
	assert.Equal(t, []string{"a", "b"}, GetEnvList("PLANETARY_TEST_LIST", ""))
}
