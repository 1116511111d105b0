package config

import (
	"fmt"
	"os"

	"workerctl/sdk/models"

	"gopkg.in/yaml.v3"
)

// DefaultWorkerFile is the request file read by create and written by init
const DefaultWorkerFile = "worker.yaml"

// WorkerFileExists checks if a worker request file exists at path
func WorkerFileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadWorkerFile loads and parses a worker request file
func LoadWorkerFile(path string) (*models.CreateManagedWorkerRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var req models.CreateManagedWorkerRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}

	if req.EnvVars == nil {
		req.EnvVars = map[string]string{}
	}

	return &req, nil
}

// SaveWorkerFile writes a worker request file
func SaveWorkerFile(path string, req *models.CreateManagedWorkerRequest) error {
	data, err := yaml.Marshal(req)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
