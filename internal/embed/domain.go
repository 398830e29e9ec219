package embed

// EffectiveDomain is the host uploads are served from: sub.root when a
// subdomain is set on a wildcard domain, root otherwise.
func EffectiveDomain(root string, wildcard bool, subdomain string) string {
	if wildcard && subdomain != "" {
		return subdomain + "." + root
	}
	return root
}
