package option_test

import (
	"testing"

	"github.com/npillmayer-style/quipu/core/option"
)

func TestMatchConcrete(t *testing.T) {
	y := option.Key(2).Match(option.Choices{
		1: func() interface{} { return "one" },
		2: func() interface{} { return "two" },
	})
	if y.(string) != "two" {
		t.Errorf("expected key 2 to match \"two\", got %v", y)
	}
}

func TestMatchElseFallback(t *testing.T) {
	y := option.Key(99).Match(option.Choices{
		1:          func() interface{} { return "one" },
		option.Else: func() interface{} { return "fallback" },
	})
	if y.(string) != "fallback" {
		t.Errorf("expected unmatched key to fall back, got %v", y)
	}
}

func TestTryMatchNoMatch(t *testing.T) {
	_, err := option.Key("nope").TryMatch(option.Choices{
		"yes": func() interface{} { return 1 },
	})
	if err != option.ErrNoMatch {
		t.Errorf("expected ErrNoMatch, got %v", err)
	}
}

func TestMatchPanicsWithoutFallback(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected Match to panic for an unmatched key with no Else")
		}
	}()
	option.Key("nope").Match(option.Choices{
		"yes": func() interface{} { return 1 },
	})
}
