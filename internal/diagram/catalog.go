package diagram

// NodeTypeInfo describes one entry of the node-type catalog. The catalog is
// rendered into the chat prompt so the model picks valid type tags; it also
// drives the deployment mapper's service/database classification. Operations
// coming back from the model are not validated against it.
type NodeTypeInfo struct {
	ID          string
	Label       string
	Description string
	UseCases    []string

	// Deployable marks types that translate into a Railway resource.
	// Plugin is set for data stores provisioned as Railway plugins.
	Deployable bool
	Plugin     string
}

// NodeTypes is the fixed catalog, enumerated exhaustively.
var NodeTypes = []NodeTypeInfo{
	{ID: "web-server", Label: "Web Server", Description: "Serves HTTP traffic and renders or proxies application pages.", UseCases: []string{"nginx frontend", "static site host"}, Deployable: true},
	{ID: "api-gateway", Label: "API Gateway", Description: "Single entry point that routes, authenticates, and throttles API calls.", UseCases: []string{"public API edge", "request fan-out"}, Deployable: true},
	{ID: "rest-api", Label: "REST API", Description: "HTTP service exposing resource-oriented JSON endpoints.", UseCases: []string{"CRUD backend", "mobile backend"}, Deployable: true},
	{ID: "graphql-api", Label: "GraphQL API", Description: "Single-endpoint API serving a typed query language.", UseCases: []string{"aggregating multiple services", "flexible client queries"}, Deployable: true},
	{ID: "websocket-server", Label: "WebSocket Server", Description: "Maintains persistent bidirectional connections for realtime updates.", UseCases: []string{"chat", "live dashboards"}, Deployable: true},
	{ID: "microservice", Label: "Microservice", Description: "Small single-purpose backend service.", UseCases: []string{"order service", "user service"}, Deployable: true},
	{ID: "serverless-function", Label: "Serverless Function", Description: "Event-triggered function with no always-on process.", UseCases: []string{"image resize on upload", "webhook handler"}, Deployable: true},
	{ID: "worker", Label: "Background Worker", Description: "Consumes jobs from a queue and processes them asynchronously.", UseCases: []string{"email sending", "report generation"}, Deployable: true},
	{ID: "cron-job", Label: "Scheduled Job", Description: "Runs on a fixed schedule rather than in response to requests.", UseCases: []string{"nightly cleanup", "periodic sync"}, Deployable: true},
	{ID: "database", Label: "Database", Description: "Relational data store, the system's primary source of truth.", UseCases: []string{"user records", "transactional data"}, Deployable: true, Plugin: "postgresql"},
	{ID: "nosql-database", Label: "NoSQL Database", Description: "Document or key-value store for flexible schemas.", UseCases: []string{"user profiles", "catalog data"}, Deployable: true, Plugin: "mongodb"},
	{ID: "cache", Label: "Cache", Description: "In-memory store for hot data with sub-millisecond reads.", UseCases: []string{"session storage", "query caching"}, Deployable: true, Plugin: "redis"},
	{ID: "message-broker", Label: "Message Broker", Description: "Routes messages between producers and consumers.", UseCases: []string{"event bus", "pub/sub fan-out"}, Deployable: true, Plugin: "redis"},
	{ID: "message-queue", Label: "Message Queue", Description: "Buffers work items for asynchronous processing.", UseCases: []string{"job queue", "order pipeline"}, Deployable: true, Plugin: "redis"},
	{ID: "search-engine", Label: "Search Engine", Description: "Full-text and faceted search over indexed documents.", UseCases: []string{"product search", "log search"}, Deployable: true},
	{ID: "object-storage", Label: "Object Storage", Description: "Stores large binary blobs addressed by key.", UseCases: []string{"user uploads", "backups"}, Deployable: true},
	{ID: "data-warehouse", Label: "Data Warehouse", Description: "Columnar store optimized for analytical queries.", UseCases: []string{"BI reporting", "historical analysis"}, Deployable: true},
	{ID: "data-pipeline", Label: "Data Pipeline", Description: "Moves and transforms data between systems.", UseCases: []string{"ETL", "stream processing"}, Deployable: true},
	{ID: "ml-model", Label: "ML Model Service", Description: "Serves machine-learning inference behind an API.", UseCases: []string{"recommendations", "fraud scoring"}, Deployable: true},
	{ID: "auth-service", Label: "Auth Service", Description: "Issues and verifies identities, tokens, and sessions.", UseCases: []string{"login", "OAuth provider"}, Deployable: true},
	{ID: "notification-service", Label: "Notification Service", Description: "Delivers push, SMS, or in-app notifications.", UseCases: []string{"order updates", "alerts"}, Deployable: true},
	{ID: "email-service", Label: "Email Service", Description: "Sends transactional or bulk email.", UseCases: []string{"password resets", "newsletters"}, Deployable: true},
	{ID: "payment-gateway", Label: "Payment Gateway", Description: "Processes payments against an external provider.", UseCases: []string{"checkout", "subscriptions"}, Deployable: true},
	{ID: "analytics", Label: "Analytics", Description: "Collects and aggregates usage events.", UseCases: []string{"product metrics", "funnels"}, Deployable: true},
	{ID: "logging", Label: "Log Aggregator", Description: "Central sink for application logs.", UseCases: []string{"debugging", "audit trail"}, Deployable: true},
	{ID: "monitoring", Label: "Monitoring", Description: "Tracks health metrics and fires alerts.", UseCases: []string{"uptime checks", "SLO dashboards"}, Deployable: true},
	{ID: "load-balancer", Label: "Load Balancer", Description: "Distributes traffic across service instances.", UseCases: []string{"horizontal scaling", "zero-downtime deploys"}, Deployable: false},
	{ID: "reverse-proxy", Label: "Reverse Proxy", Description: "Terminates TLS and forwards requests to internal services.", UseCases: []string{"TLS termination", "path routing"}, Deployable: false},
	{ID: "cdn", Label: "CDN", Description: "Caches static content at edge locations.", UseCases: []string{"asset delivery", "media streaming"}, Deployable: false},
	{ID: "dns", Label: "DNS", Description: "Resolves domain names to service endpoints.", UseCases: []string{"custom domains", "failover routing"}, Deployable: false},
	{ID: "firewall", Label: "Firewall", Description: "Filters traffic by rule before it reaches services.", UseCases: []string{"IP allowlists", "WAF"}, Deployable: false},
	{ID: "frontend", Label: "Frontend App", Description: "Browser-side single-page application.", UseCases: []string{"React app", "admin console"}, Deployable: true},
	{ID: "mobile-app", Label: "Mobile App", Description: "Native or hybrid client running on a device.", UseCases: []string{"iOS client", "Android client"}, Deployable: false},
	{ID: "external-api", Label: "External API", Description: "Third-party service the system calls but does not operate.", UseCases: []string{"Stripe", "Twilio"}, Deployable: false},
	{ID: "user", Label: "User", Description: "Human actor interacting with the system.", UseCases: []string{"end user", "operator"}, Deployable: false},
	{ID: "ci-cd", Label: "CI/CD", Description: "Builds, tests, and ships code changes.", UseCases: []string{"deploy pipeline", "test automation"}, Deployable: false},
}

var nodeTypesByID = func() map[string]NodeTypeInfo {
	m := make(map[string]NodeTypeInfo, len(NodeTypes))
	for _, t := range NodeTypes {
		m[t.ID] = t
	}
	return m
}()

// NodeTypeByID looks up a catalog entry. Unknown ids return ok=false; the
// mapper treats them as plain services rather than rejecting the diagram.
func NodeTypeByID(id string) (NodeTypeInfo, bool) {
	t, ok := nodeTypesByID[id]
	return t, ok
}
