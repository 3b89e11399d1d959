package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/net/netutil"

	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/config"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/facts"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/facts/memfacts"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/facts/prolog"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/facts/sqlite"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/kb"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/symptom"
)

const maxImportBytes = 1 << 20

func main() {
	var (
		configPath = flag.String("config", "", "Server config YAML (optional)")
		addr       = flag.String("addr", "", "Listen address (overrides config)")
		kbPath     = flag.String("kb", "", "Fact file to load the knowledge base from")
		dbPath     = flag.String("db", "", "SQLite fact database (takes precedence over --kb)")
		backend    = flag.String("backend", "", "Store backend for --kb files: memory or prolog")
		synonyms   = flag.String("synonyms", "", "Synonym lexicon YAML")
		fallback   = flag.String("fallback", "", "Custom fallback knowledge table YAML")
		staticDir  = flag.String("static", "", "Directory of static frontend files")
		origins    = flag.String("origins", "", "Comma-separated CORS origins")
	)
	flag.Parse()

	settings := config.DefaultServer()
	if *configPath != "" {
		var err error
		settings, err = config.LoadServer(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
	}
	applyFlagOverrides(&settings, *addr, *kbPath, *dbPath, *backend, *synonyms, *fallback, *staticDir, *origins)

	ctx := context.Background()

	loader := config.Loader{
		SynonymsPath: settings.SynonymsPath,
		FallbackPath: settings.FallbackPath,
	}
	components, err := loader.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var store facts.Store
	switch {
	case settings.DBPath != "":
		store, err = sqlite.Open(ctx, settings.DBPath)
		if err != nil {
			log.Fatalf("open store: %v", err)
		}
	case settings.KBPath != "":
		parsed, err := facts.ParseFile(settings.KBPath)
		if err != nil {
			log.Fatalf("load kb file: %v", err)
		}
		switch settings.Backend {
		case "", "memory":
			store = memfacts.Load(parsed)
		case "prolog":
			store, err = prolog.Load(parsed)
			if err != nil {
				log.Fatalf("load prolog store: %v", err)
			}
		default:
			log.Fatalf("unknown backend %q (want memory or prolog)", settings.Backend)
		}
	default:
		log.Print("no fact store configured, serving the fallback table")
	}

	engine := zaddy.New(zaddy.Options{
		Store:    store,
		Lexicon:  components.Lexicon,
		Fallback: components.Fallback,
		TopN:     settings.TopN,
	})
	defer engine.Close()

	snap := engine.Reload(ctx)
	log.Printf("knowledge base ready: %d diseases (degraded=%v)", snap.Len(), snap.Degraded())

	srv := &server{
		engine:    engine,
		store:     store,
		norm:      components.Normalizer,
		staticDir: settings.StaticDir,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/diagnose", srv.handleDiagnose)
	mux.HandleFunc("/diagnose", srv.handleDiagnose) // legacy alias
	mux.HandleFunc("/healthz", srv.handleHealthz)
	mux.HandleFunc("/api/kb/export", srv.handleKBExport)
	mux.HandleFunc("/api/kb/import", srv.handleKBImport)
	mux.HandleFunc("/api/kb/reload", srv.handleKBReload)
	mux.HandleFunc("/", srv.handleRoot)

	ln, err := net.Listen("tcp", settings.Addr)
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	ln = netutil.LimitListener(ln, settings.MaxConns)

	httpSrv := &http.Server{
		Handler:           corsMiddleware(settings.AllowedOrigins, mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("listening on %s (max %d connections)", settings.Addr, settings.MaxConns)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func applyFlagOverrides(s *config.Server, addr, kbPath, dbPath, backend, synonyms, fallback, staticDir, origins string) {
	if addr != "" {
		s.Addr = addr
	}
	if kbPath != "" {
		s.KBPath = kbPath
	}
	if dbPath != "" {
		s.DBPath = dbPath
	}
	if backend != "" {
		s.Backend = backend
	}
	if synonyms != "" {
		s.SynonymsPath = synonyms
	}
	if fallback != "" {
		s.FallbackPath = fallback
	}
	if staticDir != "" {
		s.StaticDir = staticDir
	}
	if origins != "" {
		s.AllowedOrigins = strings.Split(origins, ",")
		for i := range s.AllowedOrigins {
			s.AllowedOrigins[i] = strings.TrimSpace(s.AllowedOrigins[i])
		}
	}
}

type server struct {
	engine    *zaddy.Zaddy
	store     facts.Store
	norm      *symptom.Normalizer
	staticDir string
}

func (s *server) handleDiagnose(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Symptoms json.RawMessage `json:"symptoms"`
		Explain  bool            `json:"explain"`
		Simple   bool            `json:"simple"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	symptoms, ok := stringList(req.Symptoms)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "symptoms must be a JSON array"})
		return
	}
	log.Printf("[POST %s] symptoms: %v", r.URL.Path, symptoms)

	resp := s.engine.Diagnose(zaddy.DiagnoseRequest{
		Symptoms: symptoms,
		Explain:  req.Explain,
		Simple:   req.Simple,
	})
	writeJSON(w, http.StatusOK, resp)
}

// stringList interprets the symptoms field: absent means empty, any JSON
// array is accepted with scalar elements stringified, anything else is
// rejected.
func stringList(raw json.RawMessage) ([]string, bool) {
	if len(raw) == 0 {
		return nil, true
	}
	var elems []interface{}
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, false
	}
	out := make([]string, len(elems))
	for i, e := range elems {
		out[i] = fmt.Sprintf("%v", e)
	}
	return out, true
}

func (s *server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	snap := s.engine.Snapshot()
	stats := snap.Stats()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"degraded":  snap.Degraded(),
		"diseases":  stats.Diseases,
		"symptoms":  stats.DistinctSymptoms,
		"loaded_at": snap.LoadedAt().UTC().Format(time.RFC3339),
	})
}

func (s *server) handleKBExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := s.engine.Snapshot()
	var triples []facts.Fact
	for _, d := range snap.Diseases() {
		for _, sym := range d.Symptoms {
			triples = append(triples, facts.Fact{
				Relation: facts.HasSymptom,
				Subject:  d.Name,
				Object:   sym,
			})
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, facts.Render(triples))
}

func (s *server) handleKBImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no writable fact store"})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "cannot read body"})
		return
	}
	parsed, err := facts.ParseString(string(body))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	imported := 0
	for _, f := range parsed {
		canonical, ok := kb.CanonicalFact(f, s.norm)
		if !ok {
			continue
		}
		if err := s.store.Assert(r.Context(), canonical); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
			return
		}
		imported++
	}

	snap := s.engine.Reload(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"imported": imported,
		"diseases": snap.Len(),
	})
}

func (s *server) handleKBReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	snap := s.engine.Reload(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"diseases": snap.Len(),
		"degraded": snap.Degraded(),
	})
}

func (s *server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if s.staticDir == "" {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Doc Zaddy API active (no frontend present)"})
		return
	}

	// Serve the file when it exists, otherwise fall back to index.html so
	// client-side routes resolve.
	path := filepath.Join(s.staticDir, filepath.Clean("/"+r.URL.Path))
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		http.ServeFile(w, r, path)
		return
	}
	http.ServeFile(w, r, filepath.Join(s.staticDir, "index.html"))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

// corsMiddleware echoes the exact Origin back for allowed origins and
// never emits a wildcard, so credentialed cross-origin calls work and
// caches cannot leak an over-broad header.
func corsMiddleware(allowedOrigins []string, next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o != "" {
			allowed[o] = true
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if r.Method == http.MethodOptions {
			h := w.Header()
			h.Set("Vary", "Origin")
			h.Set("Access-Control-Max-Age", "600")
			if origin != "" && allowed[origin] {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Set("Access-Control-Allow-Methods", "DELETE, GET, HEAD, OPTIONS, PATCH, POST, PUT")
				h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			} else {
				h.Set("Access-Control-Allow-Methods", "OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Content-Type")
			}
			w.WriteHeader(http.StatusOK)
			io.WriteString(w, "OK")
			return
		}

		if origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Vary", "Origin")
		}
		next.ServeHTTP(w, r)
	})
}
