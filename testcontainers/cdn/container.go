package cdn

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const webRoot = "/usr/share/nginx/html/"

// Container wraps an nginx testcontainer publishing static catalog assets
type Container struct {
	Container testcontainers.Container
	BaseURL   string
}

// StartCatalogContainer starts nginx with every configured asset copied into its web root
func StartCatalogContainer(t *testing.T, config CatalogConfig) *Container {
	ctx := context.Background()

	files := make([]testcontainers.ContainerFile, 0, len(config.Assets))
	for _, asset := range config.Assets {
		files = append(files, testcontainers.ContainerFile{
			ContainerFilePath: webRoot + strings.TrimPrefix(asset.Path, "/"),
			FileMode:          0644,
			Reader:            strings.NewReader(asset.Content),
		})
	}

	req := testcontainers.ContainerRequest{
		Image:        config.Image,
		ExposedPorts: []string{"80/tcp"},
		Files:        files,
		WaitingFor:   wait.ForListeningPort("80/tcp").WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "80/tcp")
	require.NoError(t, err)

	c := &Container{
		Container: container,
		BaseURL:   "http://" + host + ":" + port.Port(),
	}
	c.waitForReady(t)

	return c
}

// Cleanup terminates the container
func (c *Container) Cleanup(t *testing.T) {
	err := c.Container.Terminate(context.Background())
	require.NoError(t, err)
}

// URL returns the absolute address of a published path
func (c *Container) URL(path string) string {
	return c.BaseURL + "/" + strings.TrimPrefix(path, "/")
}

// waitForReady polls nginx until it answers HTTP requests
func (c *Container) waitForReady(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := &http.Client{Timeout: 2 * time.Second}
	for {
		select {
		case <-ctx.Done():
			t.Logf("Catalog container did not answer in time, proceeding anyway")
			return
		default:
			resp, err := client.Get(c.BaseURL + "/")
			if err == nil {
				_ = resp.Body.Close()
				return
			}
			time.Sleep(500 * time.Millisecond)
		}
	}
}
