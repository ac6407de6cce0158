package storage

// Path materialization. A folder's path is its parent's path joined with its
// own name; a file's path is its containing folder's path joined with its
// file name. The empty string stands for the root, so every materialized
// path is root-anchored ("/Manuals/2024/spec.pdf").
//
// These functions are pure and perform no normalization beyond single-slash
// joining; names are validated upstream to contain no slashes.

// FolderPath computes the materialized path for a folder under parentPath.
// An empty parentPath means the folder sits at the root.
func FolderPath(parentPath, name string) string {
	if parentPath == "" {
		return "/" + name
	}
	return parentPath + "/" + name
}

// FilePath computes the materialized path for a file inside folderPath.
// An empty folderPath means the file sits at the root.
func FilePath(folderPath, fileName string) string {
	if folderPath == "" {
		return "/" + fileName
	}
	return folderPath + "/" + fileName
}
