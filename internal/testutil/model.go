// AngelaMos | 2026
// model.go

package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
)

// FakeModel returns fixed scores and counts how often it was invoked. When
// Shape is set, input of any other length is refused.
type FakeModel struct {
	Scores []float32
	Err    error
	Shape  []int

	calls atomic.Int64
}

func (m *FakeModel) Infer(_ context.Context, input []float32) ([]float32, error) {
	m.calls.Add(1)
	if m.Err != nil {
		return nil, m.Err
	}
	if n := m.inputLen(); n > 0 && len(input) != n {
		return nil, fmt.Errorf("input length %d does not match model input %d", len(input), n)
	}
	out := make([]float32, len(m.Scores))
	copy(out, m.Scores)
	return out, nil
}

func (m *FakeModel) InputShape() []int {
	return m.Shape
}

func (m *FakeModel) inputLen() int {
	if len(m.Shape) == 0 {
		return 0
	}
	n := 1
	for _, d := range m.Shape {
		n *= d
	}
	return n
}

func (m *FakeModel) Close() error {
	return nil
}

func (m *FakeModel) Calls() int64 {
	return m.calls.Load()
}
