package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

func decodeConfig(srcConfig string, out interface{}) (err error) {
	file, err := os.Open(srcConfig)
	if err != nil {
		return errors.Wrap(err, "config")
	}
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
	}()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	return errors.Wrapf(decoder.Decode(out), "decode %s", srcConfig)
}

//FitConfig describes one fit run. Weights are optional.
type FitConfig struct {
	FileNameFeatures string  `json:"filename_features"`
	FileNameTarget   string  `json:"filename_target"`
	FileNameWeights  string  `json:"filename_weights"`
	FileNameTheta    string  `json:"filename_theta"`
	L2               float64 `json:"l2"`
	Strategy         string  `json:"strategy"`
}

func (c FitConfig) validate() error {
	if c.FileNameFeatures == "" || c.FileNameTarget == "" {
		return errors.New("filename_features and filename_target are required")
	}
	return nil
}

//PredictConfig describes one prediction run with an already fitted coefficient vector.
type PredictConfig struct {
	FileNameFeatures   string `json:"filename_features"`
	FileNameTheta      string `json:"filename_theta"`
	FileNamePrediction string `json:"filename_prediction"`
}

func (c PredictConfig) validate() error {
	if c.FileNameFeatures == "" || c.FileNameTheta == "" || c.FileNamePrediction == "" {
		return errors.New("filename_features, filename_theta and filename_prediction are required")
	}
	return nil
}
