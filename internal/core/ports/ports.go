// Package ports declares the boundaries of the classification core: inbound
// contracts used by the CLI, HTTP and worker adapters, and outbound contracts
// implemented by infrastructure (OCI services, storage, queue, database).
package ports
