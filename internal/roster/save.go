package roster

import (
	"fmt"
	"net/http"
	"strings"

	appErrors "github.com/noah-isme/sma-roster/pkg/errors"
)

// ErrEmptySelection is returned when a batch delete is requested with nothing checked.
var ErrEmptySelection = appErrors.New("EMPTY_SELECTION", http.StatusBadRequest, "select at least one student to delete")

// SaveCoordinator validates mutations locally and turns them into descriptors.
type SaveCoordinator struct{}

// PrepareSave validates the form and builds an add or update descriptor.
func (SaveCoordinator) PrepareSave(form FormValues, mode FormMode) (Descriptor, error) {
	form = form.Normalize()
	if err := form.Validate(); err != nil {
		return Descriptor{}, err
	}
	if mode == ModeEdit {
		if form.ID == "" {
			return Descriptor{}, required("id")
		}
		return Descriptor{Action: ActionUpdate, ID: form.ID, Form: form}, nil
	}
	form.ID = ""
	return Descriptor{Action: ActionAdd, Form: form}, nil
}

// PrepareDelete builds a single delete descriptor.
func (SaveCoordinator) PrepareDelete(id string) (Descriptor, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Descriptor{}, required("id")
	}
	return Descriptor{Action: ActionDelete, ID: id}, nil
}

// PrepareDeleteBatch builds a batch delete descriptor. An empty id list is rejected
// before anything is sent.
func (SaveCoordinator) PrepareDeleteBatch(ids []string) (Descriptor, error) {
	if len(ids) == 0 {
		return Descriptor{}, appErrors.Clone(ErrEmptySelection, "")
	}
	return Descriptor{Action: ActionDeleteBatch, IDs: append([]string(nil), ids...)}, nil
}

// ConfirmIDs prepares the delete of explicit ids: a single delete for one id, a batch
// delete otherwise.
func (c SaveCoordinator) ConfirmIDs(ids []string) (Confirmation, error) {
	if len(ids) == 1 {
		d, err := c.PrepareDelete(ids[0])
		if err != nil {
			return Confirmation{}, err
		}
		return Confirmation{Prompt: deletePrompt(), Descriptor: d}, nil
	}
	d, err := c.PrepareDeleteBatch(ids)
	if err != nil {
		return Confirmation{}, err
	}
	return Confirmation{Prompt: batchDeletePrompt(len(d.IDs)), Descriptor: d}, nil
}

// Confirmation is a destructive request waiting for the user's answer.
type Confirmation struct {
	Prompt     string
	Descriptor Descriptor
}

func deletePrompt() string {
	return "Delete this student?"
}

func batchDeletePrompt(n int) string {
	return fmt.Sprintf("Delete the %d selected students?", n)
}
