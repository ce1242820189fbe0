package generator

import (
	"fmt"
	"time"
)

// Device is where the engine should place the model weights.
type Device string

const (
	DeviceAuto Device = "auto"
	DeviceCPU  Device = "cpu"
	DeviceCUDA Device = "cuda"
	DeviceMPS  Device = "mps"
)

// DType is the numeric precision the engine should load weights in.
type DType string

const (
	DTypeAuto     DType = "auto"
	DTypeFloat32  DType = "float32"
	DTypeFloat16  DType = "float16"
	DTypeBFloat16 DType = "bfloat16"
)

// ModelSpec names a checkpoint and how it should be placed.
type ModelSpec struct {
	Name   string
	Device Device
	DType  DType
}

// Validate rejects a missing name and unknown devices or dtypes; empty
// device and dtype mean auto.
func (m ModelSpec) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("model name is required")
	}
	switch m.Device {
	case "", DeviceAuto, DeviceCPU, DeviceCUDA, DeviceMPS:
	default:
		return fmt.Errorf("unknown device %q (want auto, cpu, cuda or mps)", m.Device)
	}
	switch m.DType {
	case "", DTypeAuto, DTypeFloat32, DTypeFloat16, DTypeBFloat16:
	default:
		return fmt.Errorf("unknown dtype %q (want auto, float32, float16 or bfloat16)", m.DType)
	}
	return nil
}

// Options controls a single generate call.
type Options struct {
	MaxNewTokens int
	Temperature  *float64
	Seed         *int64
	Stop         []string
	// Echo asks the engine to return the prompt followed by the continuation,
	// as a full decode of the output sequence would.
	Echo bool
}

// Completion is the decoded output of one generate call.
type Completion struct {
	Text             string
	FinishReason     string
	PromptTokens     int64
	CompletionTokens int64
}

// Result pairs a prompt with its response. Index is 1-based.
type Result struct {
	Index            int           `json:"index"`
	Prompt           string        `json:"prompt"`
	Response         string        `json:"response"`
	FinishReason     string        `json:"finish_reason,omitempty"`
	PromptTokens     int64         `json:"prompt_tokens,omitempty"`
	CompletionTokens int64         `json:"completion_tokens,omitempty"`
	Duration         time.Duration `json:"duration_ns"`
}

// Responses returns the response texts in prompt order.
func Responses(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Response
	}
	return out
}

// Prompts returns the prompt texts in order.
func Prompts(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Prompt
	}
	return out
}
