// Local mock of the immudb Vault document API for manual testing. It
// keeps revisions in memory and mirrors the remote semantics: every
// PUT appends a revision, a batch envelope becomes one revision holding
// the nested array, search paginates in insertion order and DELETE
// clears the collection, returning 200 even when it was already empty.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/go-chi/chi"
)

const (
	defaultPort = 8999
	defaultHost = "localhost"
	defaultKey  = "local-dev-key"
)

type storedRevision struct {
	TransactionID string          `json:"transactionId"`
	Revision      string          `json:"revision"`
	Document      json.RawMessage `json:"document"`
}

type searchRequest struct {
	Page    int `json:"page"`
	PerPage int `json:"perPage"`
}

type searchResponse struct {
	Page      int              `json:"page"`
	PerPage   int              `json:"perPage"`
	Revisions []storedRevision `json:"revisions"`
}

// VaultServer is an in-memory vault collection behind the documented
// HTTP surface.
type VaultServer struct {
	host    string
	port    int
	apiKey  string
	verbose bool

	mu        sync.Mutex
	revisions []storedRevision
	nextTxID  int
}

func NewVaultServer(host string, port int, apiKey string, verbose bool) *VaultServer {
	return &VaultServer{
		host:    host,
		port:    port,
		apiKey:  apiKey,
		verbose: verbose,
	}
}

func (s *VaultServer) router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requireAPIKey)

	r.Route("/ics/api/v1/ledger/{ledger}/collection/{collection}", func(r chi.Router) {
		r.Put("/document", s.handlePut)
		r.Post("/documents/search", s.handleSearch)
		r.Delete("/", s.handleDelete)
	})

	return r
}

func (s *VaultServer) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != s.apiKey {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *VaultServer) handlePut(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil || !json.Valid(body) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid document"})
		return
	}

	s.mu.Lock()
	s.nextTxID++
	rev := storedRevision{
		TransactionID: strconv.Itoa(s.nextTxID),
		Revision:      "1",
		Document:      json.RawMessage(body),
	}
	s.revisions = append(s.revisions, rev)
	count := len(s.revisions)
	s.mu.Unlock()

	if s.verbose {
		log.Printf("PUT document tx=%s (%d revision(s) total)\n%s",
			rev.TransactionID, count, prettyJSON(body))
	}

	writeJSON(w, http.StatusOK, map[string]string{"transactionId": rev.TransactionID})
}

func (s *VaultServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid search request"})
		return
	}
	if req.Page <= 0 || req.PerPage <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "page and perPage must be positive"})
		return
	}

	s.mu.Lock()
	start := (req.Page - 1) * req.PerPage
	end := start + req.PerPage
	if start > len(s.revisions) {
		start = len(s.revisions)
	}
	if end > len(s.revisions) {
		end = len(s.revisions)
	}
	page := searchResponse{
		Page:      req.Page,
		PerPage:   req.PerPage,
		Revisions: append([]storedRevision{}, s.revisions[start:end]...),
	}
	s.mu.Unlock()

	if s.verbose {
		log.Printf("SEARCH page=%d perPage=%d -> %d revision(s)",
			req.Page, req.PerPage, len(page.Revisions))
	}

	writeJSON(w, http.StatusOK, page)
}

func (s *VaultServer) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "Bearer "+s.apiKey {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
		return
	}

	s.mu.Lock()
	dropped := len(s.revisions)
	s.revisions = nil
	s.mu.Unlock()

	if s.verbose {
		log.Printf("DELETE collection (%d revision(s) dropped)", dropped)
	}

	// Deleting an empty collection is still a 200.
	writeJSON(w, http.StatusOK, map[string]string{})
}

func main() {
	host := flag.String("host", defaultHost, "Host to bind to")
	port := flag.Int("port", defaultPort, "Port to listen on")
	apiKey := flag.String("api-key", defaultKey, "API key clients must present")
	verbose := flag.Bool("verbose", false, "Log every request")
	flag.Parse()

	server := NewVaultServer(*host, *port, *apiKey, *verbose)
	addr := fmt.Sprintf("%s:%d", *host, *port)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.router(),
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("Shutting down mock vault")
		httpServer.Close()
		os.Exit(0)
	}()

	fmt.Printf("Mock vault listening on %s (API key: %s)\n", addr, *apiKey)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
