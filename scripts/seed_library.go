// seed_library.go — standalone script to parse a catalog CSV and seed
// authors and books via the Folio API.
//
// The catalog is a header-less CSV with one book per line:
//
//	author,title,year,isbn,cover_url
//
// year, isbn and cover_url may be empty. Authors are created on first
// sight and reused for subsequent books.
//
// Usage:
//
//	go run scripts/seed_library.go -catalog catalog.csv -api http://localhost:8700 -reader <uuid>
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
)

type createAuthorRequest struct {
	Name string `json:"name"`
}

type createBookRequest struct {
	AuthorID      string `json:"author_id"`
	Title         string `json:"title"`
	ISBN          string `json:"isbn,omitempty"`
	CoverURL      string `json:"cover_url,omitempty"`
	PublishedYear *int   `json:"published_year,omitempty"`
}

type catalogRow struct {
	author   string
	title    string
	year     *int
	isbn     string
	coverURL string
}

func main() {
	catalogPath := flag.String("catalog", "catalog.csv", "path to catalog CSV")
	apiURL := flag.String("api", "http://localhost:8700", "Folio API base URL")
	readerID := flag.String("reader", "", "X-Reader-ID header value (required)")
	dryRun := flag.Bool("dry-run", false, "print rows without posting")
	flag.Parse()

	if *readerID == "" && !*dryRun {
		log.Fatal("-reader is required")
	}

	f, err := os.Open(*catalogPath)
	if err != nil {
		log.Fatalf("open catalog: %v", err)
	}
	defer f.Close()

	rows, err := parseCatalog(f)
	if err != nil {
		log.Fatalf("parse catalog: %v", err)
	}
	log.Printf("parsed %d books from %s", len(rows), *catalogPath)

	if *dryRun {
		for i, row := range rows {
			year := "unknown"
			if row.year != nil {
				year = strconv.Itoa(*row.year)
			}
			fmt.Printf("[%d] %s — %s (year=%s, isbn=%s)\n", i+1, row.author, row.title, year, row.isbn)
		}
		return
	}

	client := &http.Client{}
	authorIDs := make(map[string]string)
	created, skipped := 0, 0

	for _, row := range rows {
		authorID, ok := authorIDs[row.author]
		if !ok {
			authorID, err = createAuthor(client, *apiURL, *readerID, row.author)
			if err != nil {
				log.Printf("skip %q: author: %v", row.title, err)
				skipped++
				continue
			}
			authorIDs[row.author] = authorID
		}

		req := createBookRequest{
			AuthorID:      authorID,
			Title:         row.title,
			ISBN:          row.isbn,
			CoverURL:      row.coverURL,
			PublishedYear: row.year,
		}
		if err := postJSON(client, *apiURL+"/api/v1/books", *readerID, req, nil); err != nil {
			log.Printf("skip %q: %v", row.title, err)
			skipped++
			continue
		}
		created++
	}

	log.Printf("done: %d authors, %d books created, %d skipped", len(authorIDs), created, skipped)
}

func parseCatalog(r io.Reader) ([]catalogRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var rows []catalogRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) < 2 {
			continue
		}

		row := catalogRow{
			author: strings.TrimSpace(record[0]),
			title:  strings.TrimSpace(record[1]),
		}
		if row.author == "" || row.title == "" {
			continue
		}
		if len(record) > 2 && strings.TrimSpace(record[2]) != "" {
			if y, err := strconv.Atoi(strings.TrimSpace(record[2])); err == nil {
				row.year = &y
			}
		}
		if len(record) > 3 {
			row.isbn = strings.TrimSpace(record[3])
		}
		if len(record) > 4 {
			row.coverURL = strings.TrimSpace(record[4])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func createAuthor(client *http.Client, apiURL, readerID, name string) (string, error) {
	var resp struct {
		AuthorID string `json:"author_id"`
	}
	if err := postJSON(client, apiURL+"/api/v1/authors", readerID, createAuthorRequest{Name: name}, &resp); err != nil {
		return "", err
	}
	return resp.AuthorID, nil
}

func postJSON(client *http.Client, url, readerID string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest("POST", url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Reader-ID", readerID)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
