package file_test

import (
	"testing"

	"github.com/aretw0/enform/pkg/adapters/file"
	"github.com/aretw0/enform/pkg/ports"
)

func TestFileStore_Contract(t *testing.T) {
	ports.RunSnapshotStoreContract(t, file.New(t.TempDir()))
}
