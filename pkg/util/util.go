package util

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gorilla/websocket"
	"golang.org/x/exp/constraints"
	"gopkg.in/yaml.v3"
)

// SendJSON marshals data and writes it to the websocket as a single text frame.
func SendJSON(conn *websocket.Conn, data interface{}) error {
	msg, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		return fmt.Errorf("error writing message: %w", err)
	}
	return nil
}

// LoadConfig reads a YAML file and unmarshals it into a struct of type T.
func LoadConfig[T any](filepath string) (*T, error) {
	var config T
	if err := LoadConfigInto(filepath, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadConfigInto unmarshals a YAML file over an already populated value, so
// fields absent from the file keep whatever defaults dst carried.
func LoadConfigInto(filepath string, dst any) error {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	return nil
}

func Clamp[T constraints.Ordered](x T, low T, high T) T {
	if x < low {
		return low
	} else if x > high {
		return high
	}
	return x
}
