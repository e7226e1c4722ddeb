// Package downloader fetches the open-access dataset files that can be
// pulled without registration and prints the manual steps for the rest.
package downloader

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/Fram-Jam/healthbridge/pkg/common/logger"
)

// FileSpec is one remote file a plan pulls into the dataset directory.
type FileSpec struct {
	Name string
	URL  string
}

// Plan describes how a dataset's files are obtained. Datasets with no
// direct URLs carry manual instructions only.
type Plan struct {
	DatasetID    string
	Files        []FileSpec
	Instructions string
}

// Direct returns true when every file can be fetched without a login.
func (p Plan) Direct() bool {
	return len(p.Files) > 0
}

var plans = map[string]Plan{
	"thousand_genomes": {
		DatasetID: "thousand_genomes",
		Files: []FileSpec{
			{
				Name: "integrated_call_samples_v3.20130502.ALL.panel",
				URL:  "http://ftp.1000genomes.ebi.ac.uk/vol1/ftp/release/20130502/integrated_call_samples_v3.20130502.ALL.panel",
			},
		},
	},
	"fitbit_kaggle": {
		DatasetID:    "fitbit_kaggle",
		Instructions: "Download from https://www.kaggle.com/datasets/arashnic/fitbit (requires a Kaggle account) and unzip into the dataset directory.",
	},
	"pmdata": {
		DatasetID:    "pmdata",
		Instructions: "Download from https://datasets.simula.no/pmdata/ and unzip the participant folders (p01..p16) into the dataset directory.",
	},
	"nhanes": {
		DatasetID:    "nhanes",
		Instructions: "Download the DEMO, GLU, BIOPRO and CBC XPT files from https://wwwn.cdc.gov/nchs/nhanes/ and convert them to CSV in the dataset directory.",
	},
	"nsrr_mesa": {
		DatasetID:    "nsrr_mesa",
		Instructions: "Request access at https://sleepdata.org/datasets/mesa (NSRR data use agreement) and place the CSV exports in the dataset directory.",
	},
	"ohio_t1dm": {
		DatasetID:    "ohio_t1dm",
		Instructions: "Request access via the OhioT1DM data use agreement at http://smarthealth.cs.ohio.edu/OhioT1DM-dataset.html and place the patient XML files in the dataset directory.",
	},
}

// PlanFor returns the download plan for a dataset id.
func PlanFor(datasetID string) (Plan, bool) {
	plan, ok := plans[datasetID]
	return plan, ok
}

type Fetcher struct {
	client  *http.Client
	dataDir string
}

func NewFetcher(dataDir string) *Fetcher {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &Fetcher{
		client:  &http.Client{Timeout: 5 * time.Minute, Transport: transport},
		dataDir: dataDir,
	}
}

// Fetch pulls every file in the dataset's plan into dataDir/<id>/. Datasets
// without direct URLs return an error carrying the manual instructions.
func (f *Fetcher) Fetch(ctx context.Context, datasetID string) error {
	plan, ok := PlanFor(datasetID)
	if !ok {
		return fmt.Errorf("no download plan for dataset %q", datasetID)
	}
	if !plan.Direct() {
		return fmt.Errorf("dataset %q requires a manual download: %s", datasetID, plan.Instructions)
	}

	destDir := filepath.Join(f.dataDir, datasetID)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", destDir, err)
	}

	for _, file := range plan.Files {
		dest := filepath.Join(destDir, file.Name)
		if _, err := os.Stat(dest); err == nil {
			logger.Log.WithField("file", file.Name).Info("already downloaded, skipping")
			continue
		}
		if err := f.fetchFile(ctx, file.URL, dest); err != nil {
			return fmt.Errorf("failed to fetch %s: %w", file.Name, err)
		}
		logger.Log.WithFields(map[string]interface{}{
			"dataset": datasetID,
			"file":    file.Name,
		}).Info("downloaded")
	}
	return nil
}

func (f *Fetcher) fetchFile(ctx context.Context, url, dest string) error {
	return retry(ctx, 3, 500*time.Millisecond, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := f.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
		}

		// Write to a temp file first so a partial download never looks
		// like a complete one.
		tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
		if err != nil {
			return err
		}
		if _, err := io.Copy(tmp, resp.Body); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return err
		}
		if err := tmp.Close(); err != nil {
			os.Remove(tmp.Name())
			return err
		}
		return os.Rename(tmp.Name(), dest)
	})
}

func retry(ctx context.Context, attempts int, baseDelay time.Duration, fn func() error) error {
	var err error
	delay := baseDelay
	for i := 0; i < attempts; i++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err = fn()
		if err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		delay *= 2
		if delay > 2*time.Second {
			delay = 2 * time.Second
		}
	}
	return err
}
