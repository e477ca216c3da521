package tests

import (
	"context"
	"fmt"
	"log"
	"sync"
	"testing"

	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupTestDB spins up a throwaway MongoDB container for the lifetime of the
// test and returns a database handle pointed at it.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:latest")
	if err != nil {
		t.Fatalf("failed to start container: %s", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			log.Printf("failed to terminate container: %v", err)
		}
	})

	endpoint, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get connection string: %s", err)
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(endpoint))
	if err != nil {
		t.Fatalf("failed to connect to mongo: %v", err)
	}
	t.Cleanup(func() {
		if err := client.Disconnect(ctx); err != nil {
			log.Printf("failed to disconnect mongo: %v", err)
		}
	})

	return client.Database("test_db")
}

// MemoryFileRepo implements domain.FileRepository in memory so media uploads
// can run without an S3 endpoint.
type MemoryFileRepo struct {
	mu    sync.Mutex
	Files map[string][]byte
}

func NewMemoryFileRepo() *MemoryFileRepo {
	return &MemoryFileRepo{Files: make(map[string][]byte)}
}

func (r *MemoryFileRepo) Upload(ctx context.Context, file []byte, filename string, contentType string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Files[filename] = file
	return fmt.Sprintf("https://media.test/%s", filename), nil
}
