package lib

import (
	"crypto/rand"
	"fmt"
	"gbs/src/config"
	"io"
	"math/big"
)

// codeAlphabet leaves out 0/O, 1/I/L and other glyphs guests misread over
// the phone.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// CodeGenerator produces one booking code candidate per call. Collision
// retry is the caller's job. Source is swappable so tests can force
// deterministic or colliding output.
type CodeGenerator struct {
	Prefix string
	Length int
	Source io.Reader
}

func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{
		Prefix: config.CODE_PREFIX,
		Length: config.CODE_LENGTH,
		Source: rand.Reader,
	}
}

func (g *CodeGenerator) Generate() (string, error) {
	alphaLen := big.NewInt(int64(len(codeAlphabet)))
	body := make([]byte, g.Length)
	for i := range body {
		n, err := rand.Int(g.Source, alphaLen)
		if err != nil {
			return "", err
		}
		body[i] = codeAlphabet[n.Int64()]
	}
	return fmt.Sprintf("%s-%s", g.Prefix, string(body)), nil
}
