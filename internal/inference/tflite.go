// AngelaMos | 2026
// tflite.go

package inference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/tphakala/go-tflite"
)

// TFLiteModel serves a float32 image classifier. The interpreter is not
// re-entrant, so Infer is serialized.
type TFLiteModel struct {
	mu       sync.Mutex
	model    *tflite.Model
	options  *tflite.InterpreterOptions
	interp   *tflite.Interpreter
	path     string
	inputLen int
	shape    []int
}

func Open(path string, threads int, logger *slog.Logger) (*TFLiteModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}

	model := tflite.NewModel(data)
	if model == nil {
		return nil, fmt.Errorf("cannot load TensorFlow Lite model %s", path)
	}

	options := tflite.NewInterpreterOptions()
	options.SetNumThread(max(1, threads))
	options.SetErrorReporter(func(msg string, _ any) {
		logger.Error("tflite error", "message", msg, "model", path)
	}, nil)

	interp := tflite.NewInterpreter(model, options)
	if interp == nil {
		options.Delete()
		model.Delete()
		return nil, fmt.Errorf("cannot create interpreter for %s", path)
	}

	m := &TFLiteModel{
		model:   model,
		options: options,
		interp:  interp,
		path:    path,
	}

	if status := interp.AllocateTensors(); status != tflite.OK {
		_ = m.Close() //nolint:errcheck // cleanup on init failure
		return nil, fmt.Errorf("tensor allocation failed for %s", path)
	}

	input, output := interp.GetInputTensor(0), interp.GetOutputTensor(0)
	if input == nil || output == nil {
		_ = m.Close() //nolint:errcheck // cleanup on init failure
		return nil, fmt.Errorf("model %s has no input or output tensor", path)
	}

	m.inputLen, m.shape, err = inspect(input, output)
	if err != nil {
		_ = m.Close() //nolint:errcheck // cleanup on init failure
		return nil, fmt.Errorf("model %s: %w", path, err)
	}

	return m, nil
}

// tensor is the part of *tflite.Tensor that Open inspects.
type tensor interface {
	NumDims() int
	Dim(i int) int
	Float32s() []float32
}

// inspect returns the flat input length and input shape. Both tensors must
// be float32; quantized ones read back as nil and would score every class
// zero.
func inspect(input, output tensor) (int, []int, error) {
	if len(input.Float32s()) == 0 {
		return 0, nil, errors.New("input tensor must be float32")
	}
	if output.NumDims() == 0 || len(output.Float32s()) == 0 {
		return 0, nil, errors.New("output tensor must be float32")
	}

	shape := make([]int, input.NumDims())
	for i := range shape {
		shape[i] = input.Dim(i)
	}

	return len(input.Float32s()), shape, nil
}

func (m *TFLiteModel) Infer(
	ctx context.Context,
	input []float32,
) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(input) != m.inputLen {
		return nil, fmt.Errorf(
			"input length %d does not match model %s input %d",
			len(input),
			m.path,
			m.inputLen,
		)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.interp == nil {
		return nil, errors.New("interpreter closed")
	}

	copy(m.interp.GetInputTensor(0).Float32s(), input)

	if status := m.interp.Invoke(); status != tflite.OK {
		return nil, fmt.Errorf("tensor invoke failed")
	}

	output := m.interp.GetOutputTensor(0)
	size := output.Dim(output.NumDims() - 1)

	scores := make([]float32, size)
	copy(scores, output.Float32s())

	return scores, nil
}

// InputShape returns the model input dimensions, typically [1, h, w, 3].
func (m *TFLiteModel) InputShape() []int {
	out := make([]int, len(m.shape))
	copy(out, m.shape)
	return out
}

func (m *TFLiteModel) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.interp != nil {
		m.interp.Delete()
		m.interp = nil
	}
	if m.options != nil {
		m.options.Delete()
		m.options = nil
	}
	if m.model != nil {
		m.model.Delete()
		m.model = nil
	}
	return nil
}
