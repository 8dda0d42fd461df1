package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

// A fake Jackett server for exercising the stream end to end. Serves a fixed
// indexer listing and random results per indexer, with artificial latency so
// completion-order streaming is visible. The "flaky" indexer always answers
// 500 to exercise inline error records.

var indexers = []map[string]interface{}{
	{"id": "acme", "name": "Acme Indexer", "configured": true},
	{"id": "blackhole", "name": "Blackhole", "configured": true},
	{"id": "flaky", "name": "Flaky Tracker", "configured": true},
	{"id": "dormant", "name": "Dormant", "configured": false},
}

func main() {
	http.HandleFunc("/api/v2.0/indexers", listHandler)
	http.HandleFunc("/api/v2.0/indexers/", resultsHandler)

	fmt.Println("Fake Jackett server starting on :9117")
	fmt.Println("Point JACKETT_API_URL at http://localhost:9117 (any API key works)")
	log.Fatal(http.ListenAndServe(":9117", nil))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func listHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(indexers)
}

func resultsHandler(w http.ResponseWriter, r *http.Request) {
	// Path shape: /api/v2.0/indexers/{id}/results
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 4 || parts[len(parts)-1] != "results" {
		http.NotFound(w, r)
		return
	}
	indexerID := parts[len(parts)-2]
	query := r.URL.Query().Get("Query")

	// Stagger answers so the aggregator's completion ordering shows up.
	time.Sleep(time.Duration(rand.Intn(3000)) * time.Millisecond)

	if indexerID == "flaky" {
		http.Error(w, "internal indexer error", http.StatusInternalServerError)
		return
	}

	count := 1 + rand.Intn(5)
	results := make([]map[string]interface{}, 0, count)
	for i := 0; i < count; i++ {
		title := fmt.Sprintf("%s %s Release %d 1080p", capitalize(indexerID), query, i+1)
		result := map[string]interface{}{
			"Title":    title,
			"Tracker":  indexerID,
			"Size":     int64(rand.Intn(4000)+500) * 1024 * 1024,
			"Seeders":  rand.Intn(200),
			"Leechers": rand.Intn(50),
			"Details":  fmt.Sprintf("http://localhost:9117/details/%s/%d", indexerID, i),
		}
		// Mix the three link shapes the normalizer has to handle.
		switch i % 3 {
		case 0:
			result["MagnetUri"] = fmt.Sprintf("magnet:?xt=urn:btih:%040x&dn=%s", rand.Int63(), indexerID)
		case 1:
			result["Link"] = fmt.Sprintf("http://localhost:9117/dl/%s/%d.torrent", indexerID, i)
			result["InfoHash"] = fmt.Sprintf("%040X", rand.Int63())
		default:
			result["Link"] = fmt.Sprintf("http://localhost:9117/dl/%s/%d.torrent", indexerID, i)
		}
		results = append(results, result)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"Results": results})
}
