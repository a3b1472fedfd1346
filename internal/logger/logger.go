package logger

import "go.uber.org/zap"

var Log *zap.Logger

func Init(appEnv string) {
	if appEnv == "development" {
		Log = zap.Must(zap.NewDevelopment())
		return
	}
	Log = zap.Must(zap.NewProduction())
}

func Sugar() *zap.SugaredLogger {
	return Log.Sugar()
}
