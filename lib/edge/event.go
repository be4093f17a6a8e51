// Package edge models the Lambda@Edge request contract used by the distribution's
// header-rewriting function.
//
// The deployed function is Node.js (Lambda@Edge has no Go runtime); Source renders
// it from templates/origin_host.js.tmpl using the constants below, and RewriteHost is
// the reference behavior that the handler implements.
package edge

// Header names as CloudFront presents them: map keys are lowercase, Key keeps the original case.
const (
	HostHeaderName = "host"
	HostHeaderKey  = "Host"
)

// Event is the CloudFront request event delivered to the function.
type Event struct {
	Records []Record `json:"Records"`
}

type Record struct {
	CF CF `json:"cf"`
}

type CF struct {
	Config  Config  `json:"config"`
	Request Request `json:"request"`
}

type Config struct {
	DistributionDomainName string `json:"distributionDomainName"`
	DistributionID         string `json:"distributionId"`
	EventType              string `json:"eventType"`
	RequestID              string `json:"requestId"`
}

// Request is the mutable request record. Origin is only present for origin-facing events.
type Request struct {
	ClientIP    string              `json:"clientIp"`
	Method      string              `json:"method"`
	URI         string              `json:"uri"`
	Querystring string              `json:"querystring"`
	Headers     map[string][]Header `json:"headers"`
	Origin      *Origin             `json:"origin,omitempty"`
}

type Header struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Origin struct {
	Custom *CustomOrigin `json:"custom,omitempty"`
	S3     *S3Origin     `json:"s3,omitempty"`
}

type CustomOrigin struct {
	DomainName       string              `json:"domainName"`
	Path             string              `json:"path"`
	Port             int                 `json:"port"`
	Protocol         string              `json:"protocol"`
	ReadTimeout      int                 `json:"readTimeout"`
	KeepaliveTimeout int                 `json:"keepaliveTimeout"`
	SslProtocols     []string            `json:"sslProtocols"`
	CustomHeaders    map[string][]Header `json:"customHeaders"`
}

type S3Origin struct {
	DomainName    string              `json:"domainName"`
	Path          string              `json:"path"`
	Region        string              `json:"region"`
	AuthMethod    string              `json:"authMethod"`
	CustomHeaders map[string][]Header `json:"customHeaders"`
}
