package config

type WorkerKeyStruct struct {
	PurgeStoredFilesQueue string
}

var WorkerKey = &WorkerKeyStruct{
	PurgeStoredFilesQueue: "purge_stored_files_queue",
}
