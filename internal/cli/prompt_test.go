package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntRepromptsOnInvalidInput(t *testing.T) {
	out := &bytes.Buffer{}
	p := NewPrompter(strings.NewReader("abc\n\n42\n"), out)

	assert.Equal(t, 42, p.Int("Choix : "))
	assert.Contains(t, out.String(), "Entrée invalide")
}

func TestIntReturnsZeroWhenInputExhausted(t *testing.T) {
	out := &bytes.Buffer{}
	p := NewPrompter(strings.NewReader(""), out)

	assert.Equal(t, 0, p.Int("Choix : "))
	// Exhausted input must not re-prompt.
	assert.Equal(t, "Choix : ", out.String())
	assert.Equal(t, 0, p.Int("Choix : "))
}

func TestFloatReturnsZeroWhenInputExhausted(t *testing.T) {
	out := &bytes.Buffer{}
	p := NewPrompter(strings.NewReader("abc"), out)

	assert.Equal(t, 0.0, p.Float("Note : "))
	assert.Equal(t, "Note : ", out.String())
}

func TestIntParsesFinalLineWithoutNewline(t *testing.T) {
	p := NewPrompter(strings.NewReader("7"), &bytes.Buffer{})

	assert.Equal(t, 7, p.Int("Choix : "))
}

func TestOptionalIntEmptyKeepsValue(t *testing.T) {
	p := NewPrompter(strings.NewReader("\n"), &bytes.Buffer{})

	_, ok := p.OptionalInt("ID : ")
	assert.False(t, ok)
}

func TestOptionalFloatParsesValue(t *testing.T) {
	p := NewPrompter(strings.NewReader("12.5\n"), &bytes.Buffer{})

	value, ok := p.OptionalFloat("Coefficient : ")
	assert.True(t, ok)
	assert.Equal(t, 12.5, value)
}

func TestConfirmDefaultsToNo(t *testing.T) {
	p := NewPrompter(strings.NewReader("\no\n"), &bytes.Buffer{})

	assert.False(t, p.Confirm("Supprimer ?"))
	assert.True(t, p.Confirm("Supprimer ?"))
}
