// seed_configs.go seeds company and job scoring configurations through the
// InteliHire API from a YAML file.
//
// Usage:
//
//	go run scripts/seed_configs.go -file seeds.yaml -api http://localhost:8700 -token $INTELIHIRE_ADMIN_TOKEN
//
// The seed file is a list of owners, each with a partial criteria map:
//
//	- owner_type: company
//	  owner_id: acme
//	  criteria:
//	    awards: {enabled: false}
//	    skills: {weight: 20}
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/InteliHire/internal/scoring"
)

type seed struct {
	OwnerType string                 `yaml:"owner_type"`
	OwnerID   string                 `yaml:"owner_id"`
	CompanyID string                 `yaml:"company_id"`
	Criteria  map[string]interface{} `yaml:"criteria"`
}

func main() {
	seedPath := flag.String("file", "seeds.yaml", "path to the seed file")
	apiURL := flag.String("api", "http://localhost:8700", "InteliHire API base URL")
	userID := flag.String("user", "seed", "X-User-ID header value")
	token := flag.String("token", os.Getenv("INTELIHIRE_ADMIN_TOKEN"), "admin bearer token")
	dryRun := flag.Bool("dry-run", false, "validate seeds locally without posting")
	flag.Parse()

	data, err := os.ReadFile(*seedPath)
	if err != nil {
		log.Fatalf("read seeds: %v", err)
	}
	var seeds []seed
	if err := yaml.Unmarshal(data, &seeds); err != nil {
		log.Fatalf("parse seeds: %v", err)
	}
	log.Printf("parsed %d seeds from %s", len(seeds), *seedPath)

	client := &http.Client{}
	saved, skipped := 0, 0
	for i, s := range seeds {
		name := s.OwnerType + "/" + s.OwnerID

		raw, err := json.Marshal(s.Criteria)
		if err != nil {
			log.Printf("skip %s: %v", name, err)
			skipped++
			continue
		}
		c, err := scoring.ParseCriteria(raw)
		if err != nil {
			log.Printf("skip %s: %v", name, err)
			skipped++
			continue
		}
		v := scoring.Validate(c)

		if *dryRun {
			fmt.Printf("[%d] %s (valid=%t, max_score=%d, errors=%v)\n", i+1, name, v.Valid, scoring.MaxScore(c), v.Errors)
			continue
		}
		if !v.Valid {
			log.Printf("skip %s: %v", name, v.Err())
			skipped++
			continue
		}

		body, _ := json.Marshal(map[string]interface{}{
			"criteria":   c,
			"company_id": s.CompanyID,
		})
		endpoint := fmt.Sprintf("%s/api/v1/scoring/configs/%s/%s", *apiURL, url.PathEscape(s.OwnerType), url.PathEscape(s.OwnerID))
		req, err := http.NewRequest("PUT", endpoint, bytes.NewReader(body))
		if err != nil {
			log.Printf("skip %s: %v", name, err)
			skipped++
			continue
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-User-ID", *userID)
		if *token != "" {
			req.Header.Set("Authorization", "Bearer "+*token)
		}

		resp, err := client.Do(req)
		if err != nil {
			log.Printf("skip %s: %v", name, err)
			skipped++
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			saved++
		} else {
			log.Printf("skip %s: status %d", name, resp.StatusCode)
			skipped++
		}
	}

	if !*dryRun {
		log.Printf("done: %d saved, %d skipped", saved, skipped)
	}
}
