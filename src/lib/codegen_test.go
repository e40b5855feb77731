package lib

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var codePattern = regexp.MustCompile(`^BM-[ABCDEFGHJKMNPQRSTUVWXYZ23456789]{6}$`)

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("entropy source unavailable")
}

func TestGenerateMatchesPattern(t *testing.T) {
	g := NewCodeGenerator()
	for range 100 {
		code, err := g.Generate()
		assert.Nil(t, err)
		assert.Regexp(t, codePattern, code)
	}
}

func TestGenerateUniqueness(t *testing.T) {
	g := NewCodeGenerator()
	seen := make(map[string]bool, 1000)
	for range 1000 {
		code, err := g.Generate()
		assert.Nil(t, err)
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}

func TestGenerateDeterministicSource(t *testing.T) {
	g := &CodeGenerator{Prefix: "BM", Length: 6, Source: zeroReader{}}

	first, err := g.Generate()
	assert.Nil(t, err)
	second, err := g.Generate()
	assert.Nil(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "BM-AAAAAA", first)
}

func TestGenerateSourceFailure(t *testing.T) {
	g := &CodeGenerator{Prefix: "BM", Length: 6, Source: failingReader{}}

	_, err := g.Generate()
	assert.NotNil(t, err)
}

func TestGenerateCustomPrefixAndLength(t *testing.T) {
	g := &CodeGenerator{Prefix: "GH", Length: 8, Source: zeroReader{}}

	code, err := g.Generate()
	assert.Nil(t, err)
	assert.Equal(t, "GH-AAAAAAAA", code)
}
