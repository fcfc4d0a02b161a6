package core_test

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/aretw0/folio/pkg/core"
)

func TestKind(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, core.KindOK},
		{"not found", fmt.Errorf("get en/a: %w", core.ErrNotFound), core.KindNotFound},
		{"malformed", fmt.Errorf("parse en/a: %w", core.ErrMalformed), core.KindMalformed},
		{"invalid id", fmt.Errorf("%w: ../etc", core.ErrInvalidID), core.KindInvalidID},
		{"canceled", fmt.Errorf("list: %w", context.Canceled), core.KindCanceled},
		{"other", fs.ErrPermission, core.KindIO},
		{"plain", errors.New("boom"), core.KindIO},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := core.Kind(tc.err); got != tc.want {
				t.Errorf("Kind(%v) = %q, want %q", tc.err, got, tc.want)
			}
		})
	}
}

func TestEventString(t *testing.T) {
	e := core.Event{Type: core.EventModify, ID: "en/a"}
	if got := e.String(); got != "MODIFY en/a" {
		t.Errorf("unexpected string: %q", got)
	}

	e.Collection = "blog"
	if got := e.String(); got != "MODIFY blog:en/a" {
		t.Errorf("unexpected string: %q", got)
	}
}
