// Package sim agrupa las capacidades inyectables que sostienen el
// "procesamiento" simulado del producto: reloj, espera, ids y azar.
// Los services reciben estas piezas en vez de llamar time.Now, time.Sleep
// o rand directamente, para que los tests corran instantáneos y deterministas.
package sim

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Clock devuelve el "ahora". Mismo patrón que el campo now de los services.
type Clock func() time.Time

// Sleeper espera una duración simulada respetando el contexto.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// IDGenerator produce identificadores para entidades creadas en sesión.
type IDGenerator interface {
	NewID() string
}

type realSleeper struct{}

func (realSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// RealSleeper duerme de verdad (producción).
func RealSleeper() Sleeper { return realSleeper{} }

type nopSleeper struct{}

func (nopSleeper) Sleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }

// NopSleeper no espera nada (tests).
func NopSleeper() Sleeper { return nopSleeper{} }

type uuidGenerator struct{}

func (uuidGenerator) NewID() string { return uuid.NewString() }

// UUIDGenerator genera ids v4.
func UUIDGenerator() IDGenerator { return uuidGenerator{} }

// SequenceGenerator genera ids predecibles prefix-1, prefix-2, ... (tests).
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return g.prefix + "-" + itoa(g.n)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// Rand es una fuente de azar compartida y protegida.
// *rand.Rand no es seguro para uso concurrente.
type Rand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRand(seed int64) *Rand {
	return &Rand{rng: rand.New(rand.NewSource(seed))}
}

func NewRandFromTime() *Rand {
	return NewRand(time.Now().UnixNano())
}

func (r *Rand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

func (r *Rand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// DurationBetween sortea una espera en [min, max].
func (r *Rand) DurationBetween(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	span := int64(max - min)
	r.mu.Lock()
	defer r.mu.Unlock()
	return min + time.Duration(r.rng.Int63n(span+1))
}
