package handlers

import (
	"net/http"

	"github.com/astral-cool/astral-web/internal/api"
	"github.com/astral-cool/astral-web/internal/httpserver/deps"
	"github.com/astral-cool/astral-web/internal/httpserver/views"
	"github.com/astral-cool/astral-web/internal/logger"
	"github.com/astral-cool/astral-web/internal/notice"
)

// render shows page name with the pending notice of the session.
func render(d deps.Deps, w http.ResponseWriter, r *http.Request, name, title string, data any) {
	ctx := r.Context()
	page := views.Page{Site: d.Site, Title: title, Data: data}
	if n, ok := d.Sessions.PopNotice(ctx); ok {
		page.Notice = n
	}
	if st, ok := d.Sessions.Get(ctx); ok {
		page.Username = st.User.Username
	}

	if err := d.Views.Render(w, http.StatusOK, name, page); err != nil {
		logFor(d, r).Error("failed to render page",
			logger.String("page", name),
			logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// back flashes n and sends the browser to path. POST handlers always end
// here so a reload never resubmits the form.
func back(d deps.Deps, w http.ResponseWriter, r *http.Request, path string, n notice.Notice) {
	d.Sessions.Flash(r.Context(), n)
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// failure turns err into a notice. Errors the backend did not explain are
// logged since the user only sees a generic message.
func failure(d deps.Deps, r *http.Request, op string, err error) notice.Notice {
	if _, ok := api.AsError(err); !ok {
		logFor(d, r).Error(op+" failed", logger.Error(err))
	}
	return notice.FromError(err)
}

// logFor returns the request logger set up by the access log middleware.
func logFor(d deps.Deps, r *http.Request) logger.Logger {
	return logger.FromContext(r.Context(), d.Logger)
}
