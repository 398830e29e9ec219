package api

// User is the authenticated account with its settings.
type User struct {
	ID       string   `json:"_id"`
	Username string   `json:"username"`
	Email    string   `json:"email,omitempty"`
	Key      string   `json:"key"`
	Uploads  int      `json:"uploads"`
	Invites  int      `json:"invites"`
	Admin    bool     `json:"admin"`
	Settings Settings `json:"settings"`
}

type Settings struct {
	LongURL      bool             `json:"longUrl"`
	ShowLink     bool             `json:"showLink"`
	InvisibleURL bool             `json:"invisibleUrl"`
	Embed        EmbedSettings    `json:"embed"`
	AutoWipe     AutoWipe         `json:"autoWipe"`
	RandomDomain RandomDomain     `json:"randomDomain"`
	Domain       DomainPreference `json:"domain"`
}

type EmbedSettings struct {
	Enabled     bool   `json:"enabled"`
	Color       string `json:"color"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
	RandomColor bool   `json:"randomColor"`
}

type AutoWipe struct {
	Enabled bool `json:"enabled"`
	// Interval in milliseconds.
	Interval int64 `json:"interval"`
}

type RandomDomain struct {
	Enabled bool     `json:"enabled"`
	Domains []string `json:"domains"`
}

// DomainPreference is the saved upload domain. Subdomain is only meaningful
// for wildcard domains.
type DomainPreference struct {
	Name      string `json:"name"`
	Subdomain string `json:"subdomain"`
}

type Domain struct {
	Name      string `json:"name"`
	Wildcard  bool   `json:"wildcard"`
	Donated   bool   `json:"donated"`
	DonatedBy string `json:"donatedBy,omitempty"`
	UserOnly  bool   `json:"userOnly"`
}

type Image struct {
	Filename  string `json:"filename"`
	Link      string `json:"link"`
	Size      int64  `json:"size"`
	Timestamp string `json:"timestamp"`
}

type Invite struct {
	Code        string `json:"_id"`
	CreatedBy   string `json:"createdBy,omitempty"`
	DateCreated string `json:"dateCreated"`
	Used        bool   `json:"used"`
	UsedBy      string `json:"usedBy,omitempty"`
}

type ShortenedURL struct {
	ShortID     string `json:"shortId"`
	Destination string `json:"destination"`
	Timestamp   string `json:"timestamp"`
}

// Tokens are the credentials of a signed-in user. Refresh travels as the
// backend's refreshToken cookie.
type Tokens struct {
	Access  string
	Refresh string
}

// AuthResult is returned by Login and RefreshToken.
type AuthResult struct {
	Tokens Tokens
	User   User
}

// ImagesResult carries the upload listing and the total bytes stored.
type ImagesResult struct {
	Images      []Image `json:"images"`
	StorageUsed int64   `json:"storageUsed"`
}

type Registration struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Invite   string `json:"invite"`
}

type EmbedUpdate struct {
	Color       string `json:"color"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
	RandomColor bool   `json:"randomColor"`
}

type DomainUpdate struct {
	Domain    string `json:"domain"`
	Subdomain string `json:"subdomain"`
}
