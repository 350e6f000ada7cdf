package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tarstars/ridge_least_squares/golang/ridge_lsm/rls"
	"go.uber.org/zap"
)

var (
	configPath string
	verbose    bool
	l2Override float64
)

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func fit(logger *zap.Logger, fitConfig FitConfig) error {
	if err := fitConfig.validate(); err != nil {
		return err
	}

	features, err := rls.ReadNpy(fitConfig.FileNameFeatures)
	if err != nil {
		return err
	}
	target, err := rls.ReadNpyVector(fitConfig.FileNameTarget)
	if err != nil {
		return err
	}
	var weights []float64
	if fitConfig.FileNameWeights != "" {
		if weights, err = rls.ReadNpyVector(fitConfig.FileNameWeights); err != nil {
			return err
		}
	}
	strategy, err := rls.StrategyByName(fitConfig.Strategy)
	if err != nil {
		return err
	}

	h, w := features.Dims()
	logger.Info("loaded", zap.Int("observations", h), zap.Int("features", w), zap.Bool("weighted", weights != nil))

	x := rls.RowsOf(features)

	result, err := rls.Fit(x, target,
		rls.WithL2(fitConfig.L2),
		rls.WithWeights(weights),
		rls.WithStrategy(strategy),
		rls.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	model := result.Model()
	rmse, err := model.Rmse(x, target)
	if err != nil {
		return err
	}
	logger.Info("fitted",
		zap.Float64s("coefficients", model.Coefficients()),
		zap.Float64("intercept", model.Intercept()),
		zap.String("method", result.Method),
		zap.Int("rank", result.Rank),
		zap.Float64("cond", result.Cond),
		zap.Float64("rmse", rmse),
		zap.Errors("warnings", result.Warnings),
	)

	if fitConfig.FileNameTheta == "" {
		return nil
	}
	return rls.WriteNpy(fitConfig.FileNameTheta, result.Theta)
}

func predict(logger *zap.Logger, predictConfig PredictConfig) error {
	if err := predictConfig.validate(); err != nil {
		return err
	}

	features, err := rls.ReadNpy(predictConfig.FileNameFeatures)
	if err != nil {
		return err
	}
	theta, err := rls.ReadNpyVector(predictConfig.FileNameTheta)
	if err != nil {
		return err
	}
	if len(theta) < 2 {
		return errors.Wrapf(rls.ErrShapeMismatch, "theta has %d values", len(theta))
	}

	prediction, err := rls.Model{Theta: theta}.Predict(rls.RowsOf(features))
	if err != nil {
		return err
	}
	logger.Info("predicted", zap.Int("observations", len(prediction)), zap.String("destination", predictConfig.FileNamePrediction))
	return rls.WriteNpy(predictConfig.FileNamePrediction, prediction)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rls_main",
		Short:         "Closed form weighted ridge regression",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "rls_config.json", "a config file for the run of the program")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "development logging at debug level")

	fitCmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit coefficients to npy features and target",
		RunE: func(cmd *cobra.Command, args []string) error {
			var fitConfig FitConfig
			if err := decodeConfig(configPath, &fitConfig); err != nil {
				return err
			}
			if cmd.Flags().Changed("l2") {
				fitConfig.L2 = l2Override
			}
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			return fit(logger, fitConfig)
		},
	}
	fitCmd.Flags().Float64Var(&l2Override, "l2", 0, "overrides the l2 strength of the config")

	predictCmd := &cobra.Command{
		Use:   "predict",
		Short: "Apply fitted coefficients to npy features",
		RunE: func(cmd *cobra.Command, args []string) error {
			var predictConfig PredictConfig
			if err := decodeConfig(configPath, &predictConfig); err != nil {
				return err
			}
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			return predict(logger, predictConfig)
		},
	}

	rootCmd.AddCommand(fitCmd, predictCmd)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger, _ := zap.NewProduction()
		if logger == nil {
			logger = zap.NewNop()
		}
		logger.Error("rls_main failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}
