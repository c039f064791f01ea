// AngelaMos | 2026
// labels.go

package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
)

// LabelMap maps model output indices to disease names.
type LabelMap map[int]string

func DefaultLabels() LabelMap {
	return LabelMap{
		0: "Acne",
		1: "Eczema",
		2: "Psoriasis",
		3: "Fungal Infection",
		4: "Dermatitis",
		5: "Pigmentation Disorder",
		6: "Hemangioma",
		7: "Melanoma",
		8: "Nevus",
		9: "Healthy Skin",
	}
}

func (m LabelMap) Label(idx int) string {
	if name, ok := m[idx]; ok && name != "" {
		return name
	}
	return UnknownLabel
}

// Names returns the labels ordered by index.
func (m LabelMap) Names() []string {
	idx := make([]int, 0, len(m))
	for i := range m {
		idx = append(idx, i)
	}
	sort.Ints(idx)

	names := make([]string, 0, len(idx))
	for _, i := range idx {
		names = append(names, m[i])
	}
	return names
}

// LoadLabelMap reads the class label sidecar written at training time. Both
// {"0": "Acne", ...} and ["Acne", ...] are accepted. A missing file yields
// DefaultLabels; a malformed one is an error.
func LoadLabelMap(path string) (LabelMap, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultLabels(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read label map: %w", err)
	}

	return ParseLabelMap(data)
}

func ParseLabelMap(data []byte) (LabelMap, error) {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		if len(list) == 0 {
			return nil, fmt.Errorf("parse label map: empty list")
		}
		out := make(LabelMap, len(list))
		for i, name := range list {
			out[i] = name
		}
		return out, nil
	}

	var obj map[string]string
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("parse label map: %w", err)
	}
	if len(obj) == 0 {
		return nil, fmt.Errorf("parse label map: empty object")
	}

	out := make(LabelMap, len(obj))
	for key, name := range obj {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("parse label map: invalid index %q", key)
		}
		out[idx] = name
	}

	return out, nil
}
