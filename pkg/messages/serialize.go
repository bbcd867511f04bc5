package messages

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	gametypes "github.com/cbodonnell/pixelquest/pkg/game/types"
	"github.com/klauspost/compress/zstd"
)

// SerializeGameState encodes the state as zstd-compressed JSON.
func SerializeGameState(state *gametypes.GameState) ([]byte, error) {
	if state == nil {
		return nil, fmt.Errorf("game state is nil")
	}
	b, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal game state: %v", err)
	}
	return compress(b)
}

// DeserializeGameState decodes a snapshot written by SerializeGameState.
func DeserializeGameState(data []byte) (*gametypes.GameState, error) {
	b, err := decompress(data)
	if err != nil {
		return nil, err
	}
	state := gametypes.NewGameState()
	if err := json.Unmarshal(b, state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game state: %v", err)
	}
	return state, nil
}

func compress(b []byte) ([]byte, error) {
	compressed := bytes.NewBuffer(nil)
	compWriter, err := zstd.NewWriter(compressed, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %v", err)
	}
	if _, err := compWriter.Write(b); err != nil {
		return nil, fmt.Errorf("failed to compress snapshot: %v", err)
	}
	if err := compWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zstd writer: %v", err)
	}
	return compressed.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	compReader, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %v", err)
	}
	defer compReader.Close()
	b, err := io.ReadAll(compReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read decompressed snapshot: %v", err)
	}
	return b, nil
}
