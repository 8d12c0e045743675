package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/settings"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// SettingsStore loads and replaces the storefront settings document.
type SettingsStore interface {
	Load(ctx context.Context) settings.StoreSettings
	Save(ctx context.Context, in settings.StoreSettings) (settings.StoreSettings, error)
}

func SettingsFetch(store SettingsStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings store unavailable"))
			return
		}
		responses.WriteSuccess(w, store.Load(r.Context()))
	}
}

// AdminSettingsUpdate merges the body over the current settings, so omitted
// sections keep their stored values, and saves the whole document. Arrays in
// the body replace the stored arrays.
func AdminSettingsUpdate(store SettingsStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings store unavailable"))
			return
		}

		var body map[string]any
		if err := validators.DecodeJSONDocument(w, r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		next, err := settings.Merge(store.Load(r.Context()), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		saved, err := store.Save(r.Context(), next)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, saved)
	}
}
