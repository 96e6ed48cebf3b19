package constant

// Logo is printed above the root command's long help.
const Logo = `
 _     _           _
| |__ | |___ _ __ | | __ _ _   _
| '_ \| / __| '_ \| |/ _' | | | |
| | | | \__ \ |_) | | (_| | |_| |
|_| |_|_|___/ .__/|_|\__,_|\__, |
            |_|            |___/`
