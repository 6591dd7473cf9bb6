package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"crisiswatch/pkg/platform/sentinel"
)

// Store loads model artifacts from disk. Loading happens once per process at
// startup; the store walks a list of candidate locations per domain and the
// first readable artifact wins.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates an artifact store rooted at dir.
func NewStore(dir string, logger *slog.Logger) *Store {
	return &Store{dir: dir, logger: logger}
}

// bundleFile is the outer shape of a bundled artifact: classifier plus the
// feature-name list it was trained with.
type bundleFile struct {
	Classifier   json.RawMessage `json:"classifier"`
	FeatureNames []string        `json:"feature_names"`
}

// Load resolves the artifact for a domain ("economic" or "food"). Returns
// sentinel.ErrNotFound when no candidate location has an artifact and
// sentinel.ErrInvalidState when a file exists but cannot be decoded into a
// valid artifact.
func (s *Store) Load(domain string) (*Artifact, error) {
	var lastErr error
	for _, path := range s.candidates(domain) {
		raw, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			lastErr = err
			s.logger.Warn("artifact not readable", "domain", domain, "path", path, "error", err)
			continue
		}

		art, err := decode(raw)
		if err != nil {
			lastErr = err
			s.logger.Warn("artifact rejected", "domain", domain, "path", path, "error", err)
			continue
		}

		count, _ := art.ExpectedFeatureCount()
		s.logger.Info("artifact loaded",
			"domain", domain,
			"path", path,
			"variant", art.Variant,
			"feature_count", count,
		)
		return art, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", sentinel.ErrInvalidState, lastErr)
	}
	return nil, fmt.Errorf("%w: no artifact for domain %s", sentinel.ErrNotFound, domain)
}

// candidates mirrors the deployment layouts the service has shipped with: a
// configured model directory, the working directory, and the old backend/
// nesting.
func (s *Store) candidates(domain string) []string {
	name := domain + "_crisis_model.json"
	return []string{
		filepath.Join(s.dir, name),
		name,
		filepath.Join("backend", s.dir, name),
	}
}

// decode detects the artifact schema variant and builds the adapter. A file
// with a top-level classifier key is a bundle and must also carry feature
// names; anything else must decode as a bare ensemble (legacy).
func decode(raw []byte) (*Artifact, error) {
	var bundle bundleFile
	if err := json.Unmarshal(raw, &bundle); err == nil && len(bundle.Classifier) > 0 {
		ensemble, err := decodeEnsemble(bundle.Classifier)
		if err != nil {
			return nil, err
		}
		if len(bundle.FeatureNames) == 0 {
			return nil, errors.New("bundled artifact is missing feature_names")
		}
		if len(bundle.FeatureNames) != ensemble.FeatureCount() {
			return nil, fmt.Errorf("bundle lists %d feature names but classifier expects %d features",
				len(bundle.FeatureNames), ensemble.FeatureCount())
		}
		return &Artifact{
			Variant:      VariantBundled,
			Classifier:   ensemble,
			FeatureOrder: bundle.FeatureNames,
		}, nil
	}

	ensemble, err := decodeEnsemble(raw)
	if err != nil {
		return nil, err
	}
	return &Artifact{Variant: VariantLegacy, Classifier: ensemble}, nil
}

func decodeEnsemble(raw []byte) (*TreeEnsemble, error) {
	var ensemble TreeEnsemble
	if err := json.Unmarshal(raw, &ensemble); err != nil {
		return nil, fmt.Errorf("decode classifier: %w", err)
	}
	if err := ensemble.Validate(); err != nil {
		return nil, fmt.Errorf("invalid classifier: %w", err)
	}
	return &ensemble, nil
}
