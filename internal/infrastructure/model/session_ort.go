//go:build ORT

package model

import (
	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/options"

	"github.com/seqcls/verdict/internal/infrastructure/config"
)

// newSession uses ONNX Runtime, preferring CUDA unless the device is pinned to cpu.
func newSession(cfg *config.ModelConfig) (*hugot.Session, Device, error) {
	var opts []options.WithOption
	if cfg.OnnxLibraryPath != "" {
		opts = append(opts, options.WithOnnxLibraryPath(cfg.OnnxLibraryPath))
	}

	if cfg.Device != string(DeviceCPU) {
		cudaOpts := append(opts, options.WithCuda(map[string]string{"device_id": "0"}))
		session, err := hugot.NewORTSession(cudaOpts...)
		if err == nil {
			return session, DeviceCUDA, nil
		}
		if cfg.Device == string(DeviceCUDA) {
			return nil, DeviceCUDA, err
		}
	}

	session, err := hugot.NewORTSession(opts...)
	return session, DeviceCPU, err
}
