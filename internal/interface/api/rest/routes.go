package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// auth
	RouteAuth  = RouteApiV1 + "/auth"
	RouteLogin = RouteAuth + "/login"

	// files
	RouteUploadFile   = RouteApiV1 + "/upload_file"
	RouteListFiles    = RouteApiV1 + "/list_files"
	RouteDownloadFile = RouteApiV1 + "/download_file/:file_id"
	RouteDeleteFile   = RouteApiV1 + "/delete_file/:file_id"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
