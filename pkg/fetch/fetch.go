// Package fetch pulls raw course records from the catalog API into the
// local cache, one JSON file per section per term.
package fetch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/EtomicBomb/cab/pkg/api/cab"
)

// Getter posts JSON payloads to the catalog API. It exists so tests can
// substitute canned responses.
type Getter interface {
	Post(url string, payload interface{}) (resp *http.Response, err error)
}

type getterImpl struct{}

func (*getterImpl) Post(url string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return http.Post(url, "application/json", bytes.NewReader(body))
}

type CourseFetcher interface {
	Fetch() error
}

type CourseFetcherImpl struct {
	Getter      Getter
	Config      *cab.Config
	CacheHelper *CacheHelper
}

func NewRemoteCourseFetcher(config *cab.Config) CourseFetcher {
	return &CourseFetcherImpl{
		Getter:      &getterImpl{},
		Config:      config,
		CacheHelper: &CacheHelper{CacheDir: config.CacheDir},
	}
}

// Fetch walks every configured term: one search request enumerates the
// term's sections, then one details request per section lands in the cache.
// A section that fails to download is logged and skipped; a term that fails
// to enumerate fails the whole fetch.
func (f *CourseFetcherImpl) Fetch() error {
	for _, term := range f.Config.Terms {
		stubs, err := f.stubs(term)
		if err != nil {
			return fmt.Errorf("failed to search term %s: %v", term, err)
		}
		log.Infof("term %s lists %d sections", term, len(stubs))
		for i, stub := range stubs {
			// cross-list shell entries duplicate their canonical course
			if strings.HasSuffix(stub.Code, "_XLST") {
				continue
			}
			log.Debugf("[%d/%d] %s %s crn:%s", i+1, len(stubs), term, stub.Code, stub.Crn)
			body, err := f.details(term, stub)
			if err != nil {
				log.Warnf("skipping %s crn:%s: %v", stub.Code, stub.Crn, err)
				continue
			}
			err = f.CacheHelper.WriteToTermDir(term, body, stub.Crn+".json")
			body.Close()
			if err != nil {
				return err
			}
		}
	}
	return nil
}

type stub struct {
	Crn  string `json:"crn"`
	Code string `json:"code"`
}

type searchRequest struct {
	Other    searchOther       `json:"other"`
	Criteria []searchCriterion `json:"criteria"`
}

type searchOther struct {
	Srcdb string `json:"srcdb"`
}

type searchCriterion struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type searchResults struct {
	Results []stub `json:"results"`
}

func (f *CourseFetcherImpl) stubs(term string) ([]stub, error) {
	payload := searchRequest{
		Other: searchOther{Srcdb: term},
		Criteria: []searchCriterion{
			{Field: "is_ind_study", Value: "N"},
			{Field: "is_canc", Value: "N"},
		},
	}
	resp, err := f.Getter.Post(f.route("search"), payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("status : %v", resp.StatusCode)
	}
	results := searchResults{}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode search results: %v", err)
	}
	return results.Results, nil
}

type detailsRequest struct {
	Srcdb string `json:"srcdb"`
	Key   string `json:"key"`
}

func (f *CourseFetcherImpl) details(term string, s stub) (io.ReadCloser, error) {
	payload := detailsRequest{Srcdb: term, Key: "crn:" + s.Crn}
	resp, err := f.Getter.Post(f.route("details"), payload)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("status : %v", resp.StatusCode)
	}
	return resp.Body, nil
}

func (f *CourseFetcherImpl) route(name string) string {
	return f.Config.APIURL + "?page=fose&route=" + name
}
