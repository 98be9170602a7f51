package model

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/seqcls/verdict/internal/domain/service"
	"github.com/seqcls/verdict/internal/infrastructure/config"
)

// Device identifies where inference runs
type Device string

// Supported devices
const (
	DeviceCPU  Device = "cpu"
	DeviceCUDA Device = "cuda"
)

// Opener loads a tokenizer+model pair from cfg.Dir on the requested device
type Opener func(cfg *config.ModelConfig) (service.SequenceClassifier, Device, error)

// State is the service context built once at startup and read-only afterwards.
// A nil classifier means loading failed and LoadError says why.
type State struct {
	classifier service.SequenceClassifier
	device     Device
	dir        string
	name       string
	loadError  string
	warning    string
}

// NewState creates a State from already resolved parts
func NewState(classifier service.SequenceClassifier, device Device, dir, loadError string) *State {
	return &State{
		classifier: classifier,
		device:     device,
		dir:        dir,
		loadError:  loadError,
	}
}

// Load locates the artifact directory and opens the model. It never fails:
// problems are recorded in LoadError and the state stays degraded.
func Load(cfg *config.ModelConfig, log *zap.Logger, open Opener) *State {
	state := &State{
		device: initialDevice(cfg.Device),
		dir:    cfg.Dir,
		name:   cfg.Name,
	}

	log.Info("Attempting to load model",
		zap.String("dir", cfg.Dir),
		zap.String("device", cfg.Device),
		zap.Int("max_sequence_length", cfg.MaxSequenceLength),
	)

	exists, empty := DirStatus(cfg.Dir)
	if !exists || empty {
		state.loadError = fmt.Sprintf("Model directory '%s' is empty or does not exist. Check volume mount.", cfg.Dir)
		log.Error("Model directory unavailable", zap.String("error", state.loadError))
		return state
	}

	classifier, device, err := safeOpen(cfg, open)
	if device != "" {
		state.device = device
	}
	if err != nil {
		state.loadError = fmt.Sprintf("Error loading model/tokenizer: %s", err)
		log.Error("Failed to load model", zap.String("error", state.loadError))
		return state
	}

	state.classifier = classifier
	if limit := cfg.MaxSequenceLength; limit > 0 {
		state.warning = checkTruncation(cfg.Dir, limit)
		if state.warning != "" {
			log.Warn("Tokenizer truncation does not match max_sequence_length", zap.String("warning", state.warning))
		}
	}
	log.Info("Model and tokenizer loaded", zap.String("device", string(state.device)))
	return state
}

func safeOpen(cfg *config.ModelConfig, open Opener) (classifier service.SequenceClassifier, device Device, err error) {
	defer func() {
		if r := recover(); r != nil {
			classifier = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	classifier, device, err = open(cfg)
	if err == nil && classifier == nil {
		err = errors.New("loader returned no model")
	}
	return classifier, device, err
}

func initialDevice(requested string) Device {
	if requested == string(DeviceCUDA) {
		return DeviceCUDA
	}
	return DeviceCPU
}

// DirStatus reports whether dir exists and whether it has no entries
func DirStatus(dir string) (exists, empty bool) {
	f, err := os.Open(dir)
	if err != nil {
		return false, true
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.IsDir() {
		return false, true
	}

	_, err = f.Readdirnames(1)
	return true, errors.Is(err, io.EOF)
}

// Classifier returns the loaded model, or nil when loading failed
func (s *State) Classifier() service.SequenceClassifier {
	return s.classifier
}

// Loaded reports whether the tokenizer and model are available
func (s *State) Loaded() bool {
	return s.classifier != nil
}

// LoadError returns the recorded load failure, if any
func (s *State) LoadError() string {
	return s.loadError
}

// Device returns the device inference runs on
func (s *State) Device() Device {
	return s.device
}

// Warning returns a non-fatal problem found while loading, if any
func (s *State) Warning() string {
	return s.warning
}

// OnAccelerator reports whether the model parameters live on the accelerator
func (s *State) OnAccelerator() bool {
	return s.Loaded() && s.device == DeviceCUDA
}

// Dir returns the artifact directory
func (s *State) Dir() string {
	return s.dir
}

// Name returns the configured model name
func (s *State) Name() string {
	return s.name
}

// Close releases the model, if one was loaded
func (s *State) Close() error {
	if s.classifier == nil {
		return nil
	}
	return s.classifier.Close()
}
