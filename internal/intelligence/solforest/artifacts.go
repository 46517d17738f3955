package solforest

import (
	"encoding/gob"
	"os"

	"github.com/esolpred/esolpred/pkg/errors"
)

// LoadArtifacts reads the two pretrained artifacts from disk, once per batch
// invocation.  A missing file is CodeArtifactNotFound (so the envelope
// reports FileNotFoundError, distinguishing "not deployed" from "corrupt");
// any decode failure is CodeArtifactLoad.
func LoadArtifacts(modelPath, scalerPath string) (*Forest, *StandardScaler, error) {
	forest := &Forest{}
	if err := loadGob(modelPath, forest); err != nil {
		return nil, nil, err
	}
	scaler := &StandardScaler{}
	if err := loadGob(scalerPath, scaler); err != nil {
		return nil, nil, err
	}
	return forest, scaler, nil
}

// SaveArtifacts writes both artifacts.  This is the offline-training side of
// the contract; the batch never calls it.
func SaveArtifacts(modelPath, scalerPath string, forest *Forest, scaler *StandardScaler) error {
	if err := saveGob(modelPath, forest); err != nil {
		return err
	}
	return saveGob(scalerPath, scaler)
}

func loadGob(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(err, errors.CodeArtifactNotFound,
				"Model file not found: "+path)
		}
		return errors.Wrap(err, errors.CodeArtifactLoad,
			"Error opening model file: "+path)
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(v); err != nil {
		return errors.Wrap(err, errors.CodeArtifactLoad,
			"Error loading model file: "+path)
	}
	return nil
}

func saveGob(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, errors.CodeArtifactLoad,
			"Error creating artifact file: "+path)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(v); err != nil {
		return errors.Wrap(err, errors.CodeArtifactLoad,
			"Error encoding artifact file: "+path)
	}
	return nil
}
