// Command import_matches bulk-loads fixtures into the matches table from a
// federation fixtures page (HTML table), either a saved file or a URL.
//
// Expected row layout: match id, date (YYYY-MM-DD), time (HH:MM, optional),
// home club id, away club id, venue id, level, referee id (optional when
// --default-referee is given).
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/joho/godotenv"

	"refassign-backend/database"
)

type fixtureRow struct {
	MatchID    string
	MatchDate  string
	MatchTime  string
	HomeClubID string
	AwayClubID string
	VenueID    string
	Level      string
	RefereeID  string
}

func main() {
	if os.Getenv("RENDER") == "" {
		_ = godotenv.Load()
	}

	var (
		filePath       = flag.String("file", "", "Path to a saved fixtures HTML page")
		pageURL        = flag.String("url", "", "URL of the fixtures page (alternative to --file)")
		selector       = flag.String("selector", "table.fixtures tbody tr", "CSS selector for fixture rows")
		defaultReferee = flag.String("default-referee", "", "Referee id to use when a row has none")
	)
	flag.Parse()

	if (*filePath == "") == (*pageURL == "") {
		log.Fatal("exactly one of --file or --url is required")
	}

	var reader io.Reader
	if *filePath != "" {
		f, err := os.Open(*filePath)
		if err != nil {
			log.Fatalf("open fixtures file: %v", err)
		}
		defer f.Close()
		reader = f
	} else {
		res, err := http.Get(*pageURL)
		if err != nil {
			log.Fatalf("fetch fixtures page: %v", err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			log.Fatalf("fetch fixtures page: status %d", res.StatusCode)
		}
		reader = res.Body
	}

	rows, err := parseFixtures(reader, *selector, *defaultReferee)
	if err != nil {
		log.Fatalf("parse fixtures: %v", err)
	}
	if len(rows) == 0 {
		log.Fatal("no fixture rows found; check --selector")
	}

	database.ConnectDB()

	imported := 0
	var failures []string
	for i, row := range rows {
		_, err := database.DB.Exec(`
			INSERT INTO matches (match_id, referee_id, home_club_id, away_club_id, venue_id, match_date, match_time, level)
			VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '')::time, $8)
		`, row.MatchID, row.RefereeID, row.HomeClubID, row.AwayClubID, row.VenueID, row.MatchDate, row.MatchTime, row.Level)
		if err != nil {
			failures = append(failures, fmt.Sprintf("row %d (%s): %v", i+1, row.MatchID, err))
			continue
		}
		imported++
	}

	fmt.Printf("Imported %d of %d matches\n", imported, len(rows))
	for _, f := range failures {
		fmt.Println("  failed:", f)
	}
	if len(failures) > 0 {
		os.Exit(1)
	}
}

func parseFixtures(r io.Reader, selector, defaultReferee string) ([]fixtureRow, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var rows []fixtureRow
	var rowErr error
	doc.Find(selector).Each(func(idx int, tr *goquery.Selection) {
		if rowErr != nil {
			return
		}

		cells := tr.Find("td").Map(func(_ int, td *goquery.Selection) string {
			return strings.TrimSpace(td.Text())
		})
		if len(cells) < 7 {
			rowErr = fmt.Errorf("row %d: expected at least 7 columns, got %d", idx+1, len(cells))
			return
		}

		row := fixtureRow{
			MatchID:    cells[0],
			MatchDate:  cells[1],
			MatchTime:  cells[2],
			HomeClubID: cells[3],
			AwayClubID: cells[4],
			VenueID:    cells[5],
			Level:      cells[6],
			RefereeID:  defaultReferee,
		}
		if len(cells) > 7 && cells[7] != "" {
			row.RefereeID = cells[7]
		}

		if row.MatchID == "" {
			rowErr = fmt.Errorf("row %d: missing match id", idx+1)
			return
		}
		if _, err := time.Parse("2006-01-02", row.MatchDate); err != nil {
			rowErr = fmt.Errorf("row %d: invalid date %q", idx+1, row.MatchDate)
			return
		}
		if row.RefereeID == "" {
			rowErr = fmt.Errorf("row %d: no referee id and no --default-referee", idx+1)
			return
		}

		rows = append(rows, row)
	})
	return rows, rowErr
}
