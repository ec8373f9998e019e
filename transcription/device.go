package transcription

import (
	"context"
	"time"

	"github.com/skillsenselab/moodvoice/process"
)

// ComputeTarget pairs an execution device with the numeric precision it
// supports best: reduced precision on accelerators, full precision on CPU
// for numerical stability.
type ComputeTarget struct {
	Device      string `json:"device"`
	ComputeType string `json:"compute_type"`
}

// Known devices in probe priority order.
const (
	DeviceCUDA = "cuda"
	DeviceROCm = "rocm"
	DeviceCPU  = "cpu"
)

const probeTimeout = 3 * time.Second

// ResolveComputeTarget probes available accelerators in priority order and
// returns the target the local backend should run on. Probing happens once
// at engine construction; the result is committed for the process lifetime.
func ResolveComputeTarget(ctx context.Context, runner process.Runner) ComputeTarget {
	if probeAccelerator(ctx, runner, "nvidia-smi") {
		return ComputeTarget{Device: DeviceCUDA, ComputeType: "float16"}
	}
	if probeAccelerator(ctx, runner, "rocminfo") {
		return ComputeTarget{Device: DeviceROCm, ComputeType: "float16"}
	}
	return ComputeTarget{Device: DeviceCPU, ComputeType: "float32"}
}

// probeAccelerator checks that the vendor tool exists and exits cleanly,
// which implies a usable device.
func probeAccelerator(ctx context.Context, runner process.Runner, binary string) bool {
	if !runner.LookPath(binary) {
		return false
	}
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	result, err := runner.Run(probeCtx, process.Command{Binary: binary})
	return err == nil && result.ExitCode == 0
}
