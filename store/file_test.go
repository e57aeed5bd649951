package store

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestFileStoreRoundTrip(t *testing.T) {
	st := NewFileStore(t.TempDir())
	q := mat.NewDense(3, 2, []float64{
		1.5, -2,
		0, 3.25,
		1e-9, 42,
	})
	if err := st.Save("toy", q); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := st.Load("toy", 3, 2)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !mat.EqualApprox(loaded, q, 0) {
		t.Errorf("loaded table differs:\n%v", mat.Formatted(loaded))
	}
}

func TestFileStoreRejectsWrongDimensions(t *testing.T) {
	st := NewFileStore(t.TempDir())
	if err := st.Save("toy", mat.NewDense(3, 2, nil)); err != nil {
		t.Fatalf("save: %v", err)
	}
	_, err := st.Load("toy", 4, 2)
	var mismatch *DimensionMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("got %v, want DimensionMismatchError", err)
	}
	if _, err := st.Load("toy", 3, 5); !errors.As(err, &mismatch) {
		t.Errorf("column mismatch not reported: %v", err)
	}
}

func TestFileStoreMissingTable(t *testing.T) {
	st := NewFileStore(t.TempDir())
	if _, err := st.Load("absent", 2, 2); err == nil {
		t.Errorf("expected an error for a missing table")
	}
}
