package file

const (
	SelectFilesByOwner = `
		SELECT id, filename, mimetype, filepath, added_by_user_id, added_by_user_name, created_at
		FROM files
		WHERE added_by_user_id = $1
		ORDER BY id
	`
	SelectFileByID = `
		SELECT id, filename, mimetype, filepath, added_by_user_id, added_by_user_name, created_at
		FROM files
		WHERE id = $1
	`
	InsertFile = `
		INSERT INTO files (filename, mimetype, filepath, added_by_user_id, added_by_user_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING
		  id, filename, mimetype, filepath, added_by_user_id, added_by_user_name, created_at
	`
	DeleteFileByID = `
		DELETE FROM files
		WHERE id = $1
		RETURNING
		  id, filename, mimetype, filepath, added_by_user_id, added_by_user_name, created_at
	`
)
