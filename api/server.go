package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/matt-g-everett/nodetx/stream"
)

// Controls is the playback surface exposed over HTTP.
type Controls interface {
	Play()
	Stop()
	Reset()
	Status() stream.Status
}

type Api struct {
	controls Controls
	server   *http.Server
}

func NewApi(addr string, controls Controls) *Api {
	a := new(Api)
	a.controls = controls
	a.server = &http.Server{Addr: addr, Handler: a.Handler()}
	return a
}

// Handler returns the routes of the API.
func (a *Api) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/play", a.command(a.controls.Play))
	mux.HandleFunc("/stop", a.command(a.controls.Stop))
	mux.HandleFunc("/reset", a.command(a.controls.Reset))
	mux.HandleFunc("/status", a.status)
	return mux
}

func (a *Api) command(f func()) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		f()
		a.writeStatus(w)
	}
}

func (a *Api) status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a.writeStatus(w)
}

func (a *Api) writeStatus(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a.controls.Status()); err != nil {
		log.Printf("Failed to write status: %v", err)
	}
}

// Serve listens until ctx is done.
func (a *Api) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.server.Shutdown(shutdown)
	}()

	log.Printf("Listening on %s...", a.server.Addr)
	if err := a.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
