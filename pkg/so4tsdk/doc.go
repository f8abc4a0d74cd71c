/*
Package so4tsdk provides a read-only client for the Stack Overflow for Teams
APIs, covering the calls needed to export per-user activity.

# Deployments

The client supports both hosting models and picks one from the base URL:

  - Business (Basic) teams live at https://stackoverflowteams.com/c/TEAM-NAME.
    API v2 requests go to https://api.stackoverflowteams.com/2.3 with a team
    parameter, API v3 requests to https://api.stackoverflowteams.com/v3/teams/TEAM-NAME.
  - Enterprise instances live on their own host. API v2 is served under
    /api/2.3 and needs an API key in addition to the access token; API v3 is
    served under /api/v3.

	client, err := so4tsdk.NewClient("https://acme.stackenterprise.co", token, key)
	if err != nil {
		return err
	}

	users, err := client.GetAllUsers(ctx, "")

# Pagination

Every Get* method returns the complete collection. API v2 endpoints are paged
with page/pagesize until has_more is false; API v3 endpoints with
page/pageSize until the last page is reached.

# Throttling and retries

Requests pass through an httpx.ThrottledTransport. When API v2 answers with a
backoff field, all further requests are held back for that many seconds.
Responses with status 429, any 5xx, or a v2 throttle_violation are retried with
exponential backoff up to MaxRetries times. Other failures are returned as
*APIError:

	users, err := client.GetAllUsers(ctx, "")
	var apiErr *so4tsdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		// token rejected
	}
*/
package so4tsdk
