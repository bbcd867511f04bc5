package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/cbodonnell/pixelquest/pkg/config"
	"github.com/cbodonnell/pixelquest/pkg/engine"
	"github.com/cbodonnell/pixelquest/pkg/game/types"
	"github.com/cbodonnell/pixelquest/pkg/host"
	"github.com/cbodonnell/pixelquest/pkg/log"
	"github.com/cbodonnell/pixelquest/pkg/queue"
	"github.com/cbodonnell/pixelquest/pkg/workers"
	"github.com/gorilla/mux"
)

// Status is the response of GET /status.
type Status struct {
	Running      bool     `json:"running"`
	FPS          int      `json:"fps"`
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	ActiveScene  string   `json:"activeScene,omitempty"`
	ActiveScenes []string `json:"activeScenes"`
}

type debugRequest struct {
	Enabled *bool `json:"enabled"`
}

func HandleStatus(h *host.Host) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dims := h.GameDimensions()
		status := Status{
			Width:        dims.Width,
			Height:       dims.Height,
			ActiveScenes: []string{},
		}
		if h.Game() != nil {
			status.Running = h.IsGameRunning()
			status.FPS, _ = h.GameFPS()
			status.ActiveScenes = h.ActiveSceneKeys()
			if n := len(status.ActiveScenes); n > 0 {
				status.ActiveScene = status.ActiveScenes[n-1]
			}
		}
		writeJSON(w, http.StatusOK, status)
	}
}

func HandleGetConfig(h *host.Host) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, h.Config())
	}
}

func HandleGetState(h *host.Host) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.Game() == nil {
			http.Error(w, "Game not initialized", http.StatusConflict)
			return
		}
		writeJSON(w, http.StatusOK, h.GameState())
	}
}

func HandlePatchState(h *host.Host) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch types.StatePatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, "Invalid state patch", http.StatusBadRequest)
			return
		}
		enqueue(w, h, func(h *host.Host) {
			h.UpdateGameState(patch)
		})
	}
}

func HandlePatchPhysics(h *host.Host) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch config.PhysicsPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, "Invalid physics patch", http.StatusBadRequest)
			return
		}
		enqueue(w, h, func(h *host.Host) {
			h.UpdatePhysicsConfig(patch)
		})
	}
}

func HandleSceneAction(h *host.Host) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		key := vars["key"]
		var data engine.Data
		if err := json.NewDecoder(r.Body).Decode(&data); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "Invalid scene data", http.StatusBadRequest)
			return
		}

		var cmd host.Command
		switch vars["action"] {
		case "launch":
			cmd = func(h *host.Host) { h.LaunchScene(key, data) }
		case "start":
			cmd = func(h *host.Host) { h.StartScene(key, data) }
		case "stop":
			cmd = func(h *host.Host) { h.StopScene(key) }
		case "pause":
			cmd = func(h *host.Host) { h.PauseScene(key) }
		case "resume":
			cmd = func(h *host.Host) { h.ResumeScene(key) }
		default:
			http.Error(w, "Unknown scene action", http.StatusBadRequest)
			return
		}
		enqueue(w, h, cmd)
	}
}

func HandlePutDebug(h *host.Host) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req debugRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Enabled == nil {
			http.Error(w, "Body must be {\"enabled\": bool}", http.StatusBadRequest)
			return
		}
		enabled := *req.Enabled
		enqueue(w, h, func(h *host.Host) {
			h.ToggleDebugMode(enabled)
		})
	}
}

func HandleEmitEvent(h *host.Host) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]
		var data any
		if err := json.NewDecoder(r.Body).Decode(&data); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "Invalid event data", http.StatusBadRequest)
			return
		}
		enqueue(w, h, func(h *host.Host) {
			h.EmitGameEvent(name, data)
		})
	}
}

// HandleSave hands a save request to the save worker and answers 202 Accepted.
func HandleSave(h *host.Host, saveRequests chan<- workers.SaveRequest) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if saveRequests == nil {
			http.Error(w, "Saving is disabled", http.StatusNotImplemented)
			return
		}
		if h.Game() == nil {
			http.Error(w, "Game not initialized", http.StatusConflict)
			return
		}
		select {
		case saveRequests <- workers.SaveRequest{Timestamp: time.Now().UnixMilli()}:
			w.WriteHeader(http.StatusAccepted)
		default:
			http.Error(w, "A save is already pending", http.StatusServiceUnavailable)
		}
	}
}

func HandleListSaves(h *host.Host) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slots, err := h.ListSaveSlots(r.Context())
		if err != nil {
			if errors.Is(err, host.ErrNoRepository) {
				http.Error(w, "Saving is disabled", http.StatusNotImplemented)
				return
			}
			log.Error("Failed to list save slots: %v", err)
			http.Error(w, "Failed to list save slots", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, slots)
	}
}

// enqueue schedules cmd on the frame loop and answers 202 Accepted.
func enqueue(w http.ResponseWriter, h *host.Host, cmd host.Command) {
	if h.Game() == nil {
		http.Error(w, "Game not initialized", http.StatusConflict)
		return
	}
	if err := h.Enqueue(cmd); err != nil {
		if errors.Is(err, queue.ErrQueueFull) {
			log.Warn("Rejecting API command: %v", err)
			http.Error(w, "Too many pending commands", http.StatusServiceUnavailable)
			return
		}
		log.Error("Failed to enqueue API command: %v", err)
		http.Error(w, "Failed to enqueue command", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
	}
}
