package cmd

const (
	RootCmdName  = "carprice"
	RootCmdShort = "Car price prediction from vehicle attributes"
	RootCmdLong  = `carprice encodes vehicle attributes to the feature layout of two
pre-trained models and reports a predicted price and price category.

It can run as an interactive terminal form, an HTTP service or a one-shot
command.`

	ServeCmdName  = "serve"
	ServeCmdShort = "Serve predictions over HTTP"
	ServeCmdLong  = "Start an HTTP server exposing /predict, /catalog, /schema and /health."

	FormCmdName  = "form"
	FormCmdShort = "Open the interactive prediction form"
	FormCmdLong  = "Collect vehicle attributes in a terminal form and show the predicted price and category."

	PredictCmdName  = "predict"
	PredictCmdShort = "Predict the price of one vehicle"
	PredictCmdLong  = "Encode the vehicle given by flags, run both models and print the result."

	SchemaCmdName  = "schema"
	SchemaCmdShort = "Show the feature schema of the loaded models"
	SchemaCmdLong  = "Print the feature columns of the regression model and report drift against the category catalog."

	VersionCmdName  = "version"
	VersionCmdShort = "Print version information"
)
