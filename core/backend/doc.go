/*
Package backend implements the REST facade over the project store

A backend maps every route to exactly one store operation and writes the
result as JSON. There is no validation and no business logic: whatever the
store accepts is accepted, whatever it rejects is reported.

This backend creates the following REST routes:
	GET /projects
	POST /projects
	PUT /projects/{id}
	DELETE /projects/{id}
	POST /pages
	PUT /pages/{id}
	DELETE /pages/{id}
	POST /elements
	PUT /elements/{id}
	DELETE /elements/{id}

plus the operational routes
	GET /version
	GET /healthz
	GET /metrics

The models look like this:

	Project
	{
		"id": INTEGER,
		"name": STRING,
		"created_at": TIMESTAMP
	}

	Page
	{
		"id": INTEGER,
		"name": STRING,
		"project_id": INTEGER,
		"created_at": TIMESTAMP
	}

	Element
	{
		"id": INTEGER,
		"page_id": INTEGER,
		"selector_type": STRING,
		"selector_value": STRING,
		"action_type": STRING,
		"action_value": STRING,
		"created_at": TIMESTAMP
	}

GET /projects returns every project with a "pages" array, and every page with
an "elements" array.

We can create a project with a simple POST:
  curl http://localhost:5000/projects -H'Content-Type: application/json' -d'{"name":"Site A"}'
  {
	"id": 1,
	"name": "Site A",
	"created_at": "2020-03-23T16:01:08.138302Z"
  }

add a page and an element to it:
  curl http://localhost:5000/pages -H'Content-Type: application/json' -d'{"name":"Home","project_id":1}'
  curl http://localhost:5000/elements -H'Content-Type: application/json' -d'{"page_id":1,"selector_type":"css","selector_value":"#btn","action_type":"click","action_value":""}'

Bodies are only read when sent as application/json, anything else counts as
an empty object. Values are not checked: {"name":123} is stored as "123".

and delete it again:
  curl -X DELETE http://localhost:5000/projects/1
  {
	"message": "Project deleted successfully"
  }

Errors

Every failure reported by the store results in
  500 Internal Server Error
  {
	"error": "<message of the store>"
  }
regardless of the cause. Updating an id that does not exist returns 200 with
the body null, deleting it returns the usual success message.

Notifications

If the builder carries a core.Notifier, every successful create, update and
delete is reported to it with the resource name ("project", "page" or
"element") and the JSON of the affected row. Deletes carry {"id": "<id>"} and
are only reported if a row was actually deleted.
*/
package backend
