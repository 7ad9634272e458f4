package cli

import (
	"fmt"
	"os"

	"github.com/growthcast/growthcast/internal/execcontext"
	"github.com/growthcast/growthcast/internal/server"
	"github.com/growthcast/growthcast/internal/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the prediction form and API server",
	Long: `Load the model artifacts once and serve the interactive prediction form.

The server provides:
- The prediction form at /
- A JSON prediction API at /api/v1/predict
- A live engagement-rate preview over WebSocket
- Prometheus metrics at /metrics

Examples:
  growthcast serve                                # Serve ./models on localhost:8501
  growthcast serve --models-dir /srv/models       # Custom artifact directory
  growthcast serve --port 8080 --host 0.0.0.0     # Custom host and port`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		rc := newRunContext(cmd)
		if err := startServer(rc); err != nil {
			style.Error(rc.StdErr, err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	defaults := server.DefaultConfig()
	serveCmd.Flags().IntP("port", "p", defaults.Port, "server port")
	serveCmd.Flags().String("host", defaults.Host, "server host")
	serveCmd.Flags().Bool("metrics", defaults.EnableMetrics, "enable Prometheus metrics endpoint")
	serveCmd.Flags().Bool("cors", defaults.EnableCORS, "enable CORS headers")

	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.metrics", serveCmd.Flags().Lookup("metrics"))
	_ = viper.BindPFlag("server.cors", serveCmd.Flags().Lookup("cors"))
}

// serverConfig reads the server.* keys on top of the defaults
func serverConfig() *server.Config {
	config := server.DefaultConfig()
	config.Host = viper.GetString("server.host")
	config.Port = viper.GetInt("server.port")
	config.EnableMetrics = viper.GetBool("server.metrics")
	config.EnableCORS = viper.GetBool("server.cors")
	return config
}

func startServer(rc execcontext.RunContext) error {
	paths := modelPaths()

	svc, err := loadService(rc, paths, !viper.GetBool("quiet"))
	if err != nil {
		return fmt.Errorf("failed to load models: %w", err)
	}

	config := serverConfig()
	srv, err := server.New(config, svc)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if !viper.GetBool("quiet") {
		style.Success(rc, fmt.Sprintf("Growthcast server starting at http://%s", srv.GetAddr()))
		rc.Printf("📋 Form: http://%s/\n", srv.GetAddr())
		rc.Printf("🚀 API: http://%s/api/v1/predict\n", srv.GetAddr())
		if config.EnableMetrics {
			rc.Printf("📊 Metrics: http://%s/metrics\n", srv.GetAddr())
		}
	}

	if err := srv.StartWithGracefulShutdown(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
