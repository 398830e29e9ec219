package handlers

import (
	"net/http"

	"github.com/astral-cool/astral-web/internal/api"
	"github.com/astral-cool/astral-web/internal/httpserver/deps"
)

// recentUploads caps the uploads listed on the dashboard.
const recentUploads = 10

type dashboardPage struct {
	User        api.User
	StorageUsed int64
	Images      []api.Image
	Invites     []api.Invite
	URLs        []api.ShortenedURL
}

func Dashboard(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := d.Sessions.Get(r.Context())
		if !ok {
			RequireLogin(w, r)
			return
		}

		images := st.Images
		if len(images) > recentUploads {
			images = images[:recentUploads]
		}
		render(d, w, r, "dashboard", "Dashboard", dashboardPage{
			User:        st.User,
			StorageUsed: st.StorageUsed,
			Images:      images,
			Invites:     st.Invites,
			URLs:        st.URLs,
		})
	}
}
