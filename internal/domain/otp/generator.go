// Package otp genera los códigos de retiro de 4 dígitos que el estudiante presenta en el mostrador.
package otp

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"strconv"
	"sync"
)

// Rango de códigos: siempre 4 dígitos, nunca con cero a la izquierda.
const (
	Min = 1000
	Max = 9999
)

// MaxAttempts intentos de unicidad antes de rendirse con ErrOTPExhausted.
const MaxAttempts = 5

// Generator produce códigos uniformes en [Min, Max]. Es seguro para uso concurrente.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGenerator crea un generador con semilla aleatoria del sistema.
func NewGenerator() *Generator {
	var b [16]byte
	_, _ = crand.Read(b[:])
	return NewSeededGenerator(binary.LittleEndian.Uint64(b[:8]), binary.LittleEndian.Uint64(b[8:]))
}

// NewSeededGenerator crea un generador reproducible (tests de propiedad).
func NewSeededGenerator(seed1, seed2 uint64) *Generator {
	return &Generator{rnd: rand.New(rand.NewPCG(seed1, seed2))}
}

// Next devuelve el siguiente código.
func (g *Generator) Next() string {
	g.mu.Lock()
	n := Min + g.rnd.IntN(Max-Min+1)
	g.mu.Unlock()
	return strconv.Itoa(n)
}

// Valid indica si s tiene el formato de un código de retiro.
func Valid(s string) bool {
	if len(s) != 4 || s[0] == '0' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
